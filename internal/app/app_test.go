package app

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdraft/internal/config"
	"tripdraft/internal/modules/itinerary"
)

func offlineConfig() config.Config {
	return config.Config{
		AI:    config.AIConfig{Provider: config.ProviderGemini},
		Store: config.StoreConfig{Backend: config.StoreMemory},
	}
}

func TestBuildOfflineDraftsFallback(t *testing.T) {
	logger := NewLogger(io.Discard, "info")
	a, err := Build(context.Background(), offlineConfig(), logger, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Places)
	assert.Nil(t, a.Verifier)

	res, err := a.Planner.Plan(context.Background(), itinerary.Preferences{
		Destination: "Jaipur", StartDate: "2024-03-01", EndDate: "2024-03-02", Pax: 1, Budget: 25000,
	}, "")
	require.NoError(t, err)
	assert.Len(t, res.Draft.Days, 2)
	assert.Empty(t, res.Draft.ImageURL)

	rec, err := a.Planner.Get(context.Background(), res.TripID)
	require.NoError(t, err)
	assert.Equal(t, itinerary.StatusDraft, rec.Status)
}

func TestBuildWithMapsKey(t *testing.T) {
	cfg := offlineConfig()
	cfg.Maps = config.MapsConfig{APIKey: "k", MaxConcurrent: 2}
	a, err := Build(context.Background(), cfg, NewLogger(io.Discard, "info"), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Places)
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
