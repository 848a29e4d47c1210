package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"googlemaps.github.io/maps"

	"tripdraft/internal/types"
)

const defaultBaseURL = "https://maps.googleapis.com"

// Image is a fetched image body. Callers must close Data.
type Image struct {
	ContentType string
	Data        io.ReadCloser
}

// PlacePhoto downloads a place photo scaled to maxWidth.
func (s *PlacesService) PlacePhoto(ctx context.Context, reference string, maxWidth int) (Image, error) {
	resp, err := s.client.PlacePhoto(ctx, &maps.PlacePhotoRequest{
		PhotoReference: reference,
		MaxWidth:       uint(maxWidth),
	})
	if err != nil {
		return Image{}, fmt.Errorf("place photo api error: %w", err)
	}
	return Image{ContentType: resp.ContentType, Data: resp.Data}, nil
}

// StaticMap renders a roadmap centred on center, which may be a place name or
// "lat,lng", and returns it PNG-encoded.
func (s *PlacesService) StaticMap(ctx context.Context, center string, zoom, width, height int) ([]byte, error) {
	img, err := s.client.StaticMap(ctx, &maps.StaticMapRequest{
		Center:  center,
		Zoom:    zoom,
		Size:    fmt.Sprintf("%dx%d", width, height),
		MapType: maps.RoadMap,
	})
	if err != nil {
		return nil, fmt.Errorf("static map api error: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode static map: %w", err)
	}
	return buf.Bytes(), nil
}

type streetViewMetadata struct {
	Status string `json:"status"`
}

// StreetViewAvailable asks the metadata endpoint whether panorama imagery
// exists near p. The metadata call is not billed.
func (s *PlacesService) StreetViewAvailable(ctx context.Context, p types.Point) (bool, error) {
	resp, err := s.get(ctx, "/maps/api/streetview/metadata", url.Values{"location": {p.String()}})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var meta streetViewMetadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return false, fmt.Errorf("decode street view metadata: %w", err)
	}
	return meta.Status == "OK", nil
}

// StreetView fetches a street-level image centred on p.
func (s *PlacesService) StreetView(ctx context.Context, p types.Point, width, height int) (Image, error) {
	resp, err := s.get(ctx, "/maps/api/streetview", url.Values{
		"location": {p.String()},
		"size":     {strconv.Itoa(width) + "x" + strconv.Itoa(height)},
	})
	if err != nil {
		return Image{}, err
	}
	return Image{ContentType: resp.Header.Get("Content-Type"), Data: resp.Body}, nil
}

func (s *PlacesService) get(ctx context.Context, path string, q url.Values) (*http.Response, error) {
	q.Set("key", s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("street view request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("street view request: unexpected status %d", resp.StatusCode)
	}
	return resp, nil
}
