package maps

import (
	"net/url"
	"strconv"

	"tripdraft/internal/types"
)

// ImageKind identifies which imagery endpoint an ImageRef points at.
type ImageKind string

const (
	KindPhoto      ImageKind = "photo"
	KindStreetView ImageKind = "streetview"
	KindStaticMap  ImageKind = "static"
)

// Street view and static map sizes; both endpoints cap at 640 per side.
const (
	PreviewWidth  = 640
	PreviewHeight = 400
	StaticZoom    = 12
)

// ImageRef describes a displayable image without fetching it.
type ImageRef struct {
	Kind           ImageKind
	PhotoReference string
	Width          int
	Location       types.Point
	Center         string
}

// URLBuilder turns an ImageRef into the URL handed to clients. With proxy on,
// URLs point at this service's /api/images routes so the API key never
// leaves the server.
type URLBuilder struct {
	apiKey     string
	proxy      bool
	publicBase string
	baseURL    string
}

func NewURLBuilder(apiKey string, proxy bool, publicBase string) *URLBuilder {
	return &URLBuilder{apiKey: apiKey, proxy: proxy, publicBase: publicBase, baseURL: defaultBaseURL}
}

// URL returns "" for a zero ImageRef.
func (b *URLBuilder) URL(ref ImageRef) string {
	if ref.Kind == "" {
		return ""
	}
	if b.proxy {
		return b.publicBase + "/api/images/" + string(ref.Kind) + "?" + ProxyQuery(ref).Encode()
	}

	q := url.Values{"key": {b.apiKey}}
	var path string
	switch ref.Kind {
	case KindPhoto:
		path = "/maps/api/place/photo"
		q.Set("maxwidth", strconv.Itoa(ref.Width))
		q.Set("photo_reference", ref.PhotoReference)
	case KindStreetView:
		path = "/maps/api/streetview"
		q.Set("location", ref.Location.String())
		q.Set("size", sizeParam())
	case KindStaticMap:
		path = "/maps/api/staticmap"
		q.Set("center", ref.Center)
		q.Set("zoom", strconv.Itoa(StaticZoom))
		q.Set("size", sizeParam())
	default:
		return ""
	}
	return b.baseURL + path + "?" + q.Encode()
}

// ProxyQuery is the query string the image proxy routes accept for ref.
func ProxyQuery(ref ImageRef) url.Values {
	q := url.Values{}
	switch ref.Kind {
	case KindPhoto:
		q.Set("ref", ref.PhotoReference)
		q.Set("w", strconv.Itoa(ref.Width))
	case KindStreetView:
		q.Set("lat", strconv.FormatFloat(ref.Location.Lat, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(ref.Location.Lng, 'f', -1, 64))
	case KindStaticMap:
		q.Set("center", ref.Center)
	}
	return q
}

func sizeParam() string {
	return strconv.Itoa(PreviewWidth) + "x" + strconv.Itoa(PreviewHeight)
}
