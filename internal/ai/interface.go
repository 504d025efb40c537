package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Providers are swappable (Gemini today); callers depend only on this interface.
type LLMProvider interface {
	// EstimateRoute asks the model for the driving distance and duration between two places.
	// hint is optional free text such as a preferred highway.
	EstimateRoute(ctx context.Context, pickup, drop, hint string) (*RouteResult, error)
}
