package maps

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"googlemaps.github.io/maps"

	"tripdraft/internal/types"
)

var (
	// ErrNoResults means the upstream answered but matched nothing usable.
	ErrNoResults = errors.New("maps: no results")
	// ErrDisabled is returned by capabilities built without an API key.
	ErrDisabled = errors.New("maps: no api key configured")
)

// Photo is one provider photo descriptor.
type Photo struct {
	Reference string
	Width     int
	Height    int
}

// Candidate is a single places-search hit. Location is nil when the provider
// returned no usable geometry.
type Candidate struct {
	PlaceID  string
	Name     string
	Address  string
	Location *types.Point
	Photos   []Photo
}

// Option customises a PlacesService.
type Option func(*options)

type options struct {
	language   string
	baseURL    string
	httpClient *http.Client
}

// WithLanguage sets the result language for text search and find-place.
func WithLanguage(lang string) Option {
	return func(o *options) { o.language = lang }
}

// WithBaseURL points every request, including street view, at baseURL.
func WithBaseURL(baseURL string) Option {
	return func(o *options) { o.baseURL = baseURL }
}

// WithHTTPClient overrides the client used for street view requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// PlacesService handles interactions with Google Places and imagery APIs.
type PlacesService struct {
	client   *maps.Client
	apiKey   string
	language string
	baseURL  string
	http     *http.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
func NewPlacesService(apiKey string, opts ...Option) (*PlacesService, error) {
	if apiKey == "" {
		return nil, ErrDisabled
	}
	o := options{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := []maps.ClientOption{maps.WithAPIKey(apiKey)}
	if o.baseURL != defaultBaseURL {
		clientOpts = append(clientOpts, maps.WithBaseURL(o.baseURL))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{
		client:   client,
		apiKey:   apiKey,
		language: o.language,
		baseURL:  o.baseURL,
		http:     o.httpClient,
	}, nil
}

// TextSearch runs a free-text places query and returns hits in provider order.
func (s *PlacesService) TextSearch(ctx context.Context, query string) ([]Candidate, error) {
	resp, err := s.client.TextSearch(ctx, &maps.TextSearchRequest{
		Query:    query,
		Language: s.language,
	})
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoResults
	}

	out := make([]Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, candidateFrom(r))
	}
	return out, nil
}

// FindPlace resolves a name to its best candidates, requesting only the id,
// name, geometry and photos fields.
func (s *PlacesService) FindPlace(ctx context.Context, input string) ([]Candidate, error) {
	resp, err := s.client.FindPlaceFromText(ctx, &maps.FindPlaceFromTextRequest{
		Input:     input,
		InputType: maps.FindPlaceFromTextInputTypeTextQuery,
		Language:  s.language,
		Fields: []maps.PlaceSearchFieldMask{
			maps.PlaceSearchFieldMaskPlaceID,
			maps.PlaceSearchFieldMaskName,
			maps.PlaceSearchFieldMaskGeometry,
			maps.PlaceSearchFieldMaskPhotos,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("find place api error: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, ErrNoResults
	}

	out := make([]Candidate, 0, len(resp.Candidates))
	for _, r := range resp.Candidates {
		out = append(out, candidateFrom(r))
	}
	return out, nil
}

func candidateFrom(r maps.PlacesSearchResult) Candidate {
	c := Candidate{
		PlaceID: r.PlaceID,
		Name:    r.Name,
		Address: r.FormattedAddress,
	}
	loc := r.Geometry.Location
	if loc.Lat != 0 || loc.Lng != 0 {
		c.Location = &types.Point{Lat: loc.Lat, Lng: loc.Lng}
	}
	for _, p := range r.Photos {
		if p.PhotoReference == "" {
			continue
		}
		c.Photos = append(c.Photos, Photo{Reference: p.PhotoReference, Width: p.Width, Height: p.Height})
	}
	return c
}
