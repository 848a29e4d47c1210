package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearCredentials(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "OPENAI_API_KEY", "MAPS_API_KEY", "FIRESTORE_PROJECT",
		"GOOGLE_APPLICATION_CREDENTIALS", "TRIPDRAFT_AI_GEMINI_KEY", "TRIPDRAFT_MAPS_API_KEY",
		"TRIPDRAFT_STORE_BACKEND", "TRIPDRAFT_AI_PROVIDER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearCredentials(t)

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, StorePostgres, cfg.Store.Backend)
	assert.Equal(t, 8*time.Second, cfg.Maps.Timeout)
	assert.Equal(t, 20*time.Second, cfg.Maps.Budget)
	assert.Equal(t, 4, cfg.Maps.MaxConcurrent)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.HTTP.CORSOrigins)
	assert.False(t, cfg.AI.Enabled(), "generation must be disabled without a key")
	assert.False(t, cfg.Maps.Enabled(), "maps must be disabled without a key")
}

func TestLoadWellKnownCredentialNames(t *testing.T) {
	clearCredentials(t)
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("MAPS_API_KEY", "maps-key")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "gem-key", cfg.AI.GeminiKey)
	assert.Equal(t, "maps-key", cfg.Maps.APIKey)
	assert.True(t, cfg.AI.Enabled())
	assert.True(t, cfg.Maps.Enabled())
}

func TestLoadPrefixedOverrides(t *testing.T) {
	clearCredentials(t)
	t.Setenv("TRIPDRAFT_STORE_BACKEND", "memory")
	t.Setenv("TRIPDRAFT_MAPS_MAX_CONCURRENT", "9")
	t.Setenv("TRIPDRAFT_AI_PROVIDER", "OpenAI")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, 9, cfg.Maps.MaxConcurrent)
	assert.Equal(t, ProviderOpenAI, cfg.AI.Provider)
	assert.True(t, cfg.AI.Enabled())
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearCredentials(t)
	t.Setenv("TRIPDRAFT_STORE_BACKEND", "mongo")

	_, err := LoadFrom(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.backend")
}

func TestLoadFirestoreRequiresProject(t *testing.T) {
	clearCredentials(t)
	t.Setenv("TRIPDRAFT_STORE_BACKEND", "firestore")

	_, err := LoadFrom(viper.New())
	require.Error(t, err)

	t.Setenv("FIRESTORE_PROJECT", "demo-project")
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "demo-project", cfg.Store.FirebaseProjectID)
}

func TestLoadRejectsBudgetBelowCallTimeout(t *testing.T) {
	clearCredentials(t)
	t.Setenv("TRIPDRAFT_MAPS_BUDGET", "2s")

	_, err := LoadFrom(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maps.budget")
}
