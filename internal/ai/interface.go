package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Gemini and OpenAI are interchangeable behind it.
type LLMProvider interface {
	// PlanItinerary sends a fully rendered itinerary prompt and returns the
	// model's raw text. Parsing and validation belong to the caller.
	PlanItinerary(ctx context.Context, prompt string) (string, error)

	// Close releases client resources.
	Close()
}
