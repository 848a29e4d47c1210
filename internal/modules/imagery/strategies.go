package imagery

import (
	"context"
	"strings"
	"time"

	"github.com/samber/lo"

	"tripdraft/internal/maps"
	"tripdraft/internal/metrics"
	"tripdraft/internal/types"
)

const (
	resultsPerQuery = 3
	photosPerResult = 5
)

// Finder is the direct place lookup capability.
type Finder interface {
	FindPlace(ctx context.Context, input string) ([]maps.Candidate, error)
}

// Searcher is the text search capability.
type Searcher interface {
	TextSearch(ctx context.Context, query string) ([]maps.Candidate, error)
}

// PanoramaChecker reports whether street-level imagery exists at a point.
type PanoramaChecker interface {
	StreetViewAvailable(ctx context.Context, p types.Point) (bool, error)
}

// DirectLookup selects the first photo of the best find-place match.
type DirectLookup struct {
	Finder  Finder
	Width   int
	Timeout time.Duration
	Metrics *metrics.Metrics
}

func (s *DirectLookup) Name() string { return "direct_lookup" }

func (s *DirectLookup) Attempt(ctx context.Context, q *Query) (maps.ImageRef, error) {
	ctx, cancel := callContext(ctx, s.Timeout)
	defer cancel()

	start := time.Now()
	candidates, err := s.Finder.FindPlace(ctx, q.Destination)
	s.Metrics.ObserveOutbound("find_place", start, err)
	if err != nil {
		return maps.ImageRef{}, err
	}
	if len(candidates) == 0 {
		return maps.ImageRef{}, ErrNoImage
	}

	best := candidates[0]
	if len(best.Photos) == 0 {
		return maps.ImageRef{}, ErrNoImage
	}
	return photoRef(best.Photos[0], s.Width), nil
}

// TextSearchVariants runs disambiguated text searches and keeps the widest
// photo among the first few results of the first query that has any.
type TextSearchVariants struct {
	Searcher        Searcher
	RegionQualifier string
	Width           int
	Timeout         time.Duration
	Metrics         *metrics.Metrics
}

func (s *TextSearchVariants) Name() string { return "text_search" }

func (s *TextSearchVariants) Attempt(ctx context.Context, q *Query) (maps.ImageRef, error) {
	var lastErr error = ErrNoImage
	for _, query := range Variants(q.Destination, s.RegionQualifier) {
		candidates, err := s.search(ctx, query)
		if err != nil {
			lastErr = err
			continue
		}
		if photo, ok := widestPhoto(candidates, q); ok {
			return photoRef(photo, s.Width), nil
		}
	}
	return maps.ImageRef{}, lastErr
}

func (s *TextSearchVariants) search(ctx context.Context, query string) ([]maps.Candidate, error) {
	ctx, cancel := callContext(ctx, s.Timeout)
	defer cancel()

	start := time.Now()
	candidates, err := s.Searcher.TextSearch(ctx, query)
	s.Metrics.ObserveOutbound("places_search", start, err)
	return candidates, err
}

// widestPhoto inspects the first results and their first photos, recording
// every usable coordinate on q along the way.
func widestPhoto(candidates []maps.Candidate, q *Query) (maps.Photo, bool) {
	var best maps.Photo
	found := false
	for _, c := range lo.Slice(candidates, 0, resultsPerQuery) {
		q.addCoordinate(c.Location)
		for _, p := range lo.Slice(c.Photos, 0, photosPerResult) {
			if !found || p.Width > best.Width {
				best, found = p, true
			}
		}
	}
	return best, found
}

// Variants lists the text-search queries for a destination in priority
// order, without duplicates.
func Variants(destination, regionQualifier string) []string {
	dest := strings.TrimSpace(destination)
	if dest == "" {
		return nil
	}
	queries := []string{
		dest,
		dest + " tourist attraction",
		dest + " landmark",
		dest + " city",
	}
	if r := strings.TrimSpace(regionQualifier); r != "" {
		queries = append(queries, dest+" "+r)
	}
	if head, _, found := strings.Cut(dest, ","); found {
		if head = strings.TrimSpace(head); head != "" {
			queries = append(queries, head)
		}
	}
	return lo.Uniq(queries)
}

// StreetView uses the best coordinate collected by earlier stages.
type StreetView struct {
	Checker PanoramaChecker
	Timeout time.Duration
	Metrics *metrics.Metrics
}

func (s *StreetView) Name() string { return "street_view" }

func (s *StreetView) Attempt(ctx context.Context, q *Query) (maps.ImageRef, error) {
	if len(q.Coordinates) == 0 {
		return maps.ImageRef{}, ErrNoImage
	}
	point := q.Coordinates[0]

	ctx, cancel := callContext(ctx, s.Timeout)
	defer cancel()

	start := time.Now()
	ok, err := s.Checker.StreetViewAvailable(ctx, point)
	s.Metrics.ObserveOutbound("street_view_metadata", start, err)
	if err != nil {
		return maps.ImageRef{}, err
	}
	if !ok {
		return maps.ImageRef{}, ErrNoImage
	}
	return maps.ImageRef{Kind: maps.KindStreetView, Location: point}, nil
}

// StaticMap always yields a roadmap centred on the destination name.
type StaticMap struct{}

func (StaticMap) Name() string { return "static_map" }

func (StaticMap) Attempt(_ context.Context, q *Query) (maps.ImageRef, error) {
	center := strings.TrimSpace(q.Destination)
	if center == "" {
		return maps.ImageRef{}, ErrNoImage
	}
	return maps.ImageRef{Kind: maps.KindStaticMap, Center: center}, nil
}

func photoRef(p maps.Photo, width int) maps.ImageRef {
	if p.Width > 0 && p.Width < width {
		width = p.Width
	}
	return maps.ImageRef{Kind: maps.KindPhoto, PhotoReference: p.Reference, Width: width}
}
