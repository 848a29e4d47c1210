package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	oaioption "github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripdraft/internal/config"
)

func TestNewProviderDisabledWithoutKey(t *testing.T) {
	p, err := NewProvider(context.Background(), config.AIConfig{Provider: config.ProviderGemini})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = NewProvider(context.Background(), config.AIConfig{Provider: config.ProviderOpenAI, GeminiKey: "wrong-slot"})
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestNewProviderOpenAI(t *testing.T) {
	p, err := NewProvider(context.Background(), config.AIConfig{Provider: config.ProviderOpenAI, OpenAIKey: "sk-test"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIProvider{}, p)
}

func TestOpenAIProviderPlanItinerary(t *testing.T) {
	var gotModel, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotModel, _ = body["model"].(string)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"{\"days\":[]}"}}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "", oaioption.WithBaseURL(srv.URL), oaioption.WithMaxRetries(0))
	text, err := p.PlanItinerary(context.Background(), "plan Jaipur")

	require.NoError(t, err)
	assert.Equal(t, `{"days":[]}`, text)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotModel)
}

func TestOpenAIProviderEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("sk-test", "gpt-4o-mini", oaioption.WithBaseURL(srv.URL), oaioption.WithMaxRetries(0))
	_, err := p.PlanItinerary(context.Background(), "plan Jaipur")

	assert.ErrorIs(t, err, errNoCandidates)
}
