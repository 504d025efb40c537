// README: Gemini client that estimates road distance for a pickup/drop pair.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// routeModel answers in JSON mode at low temperature so repeated lookups agree.
const (
	routeModel       = "gemini-2.0-flash"
	routeTemperature = 0.1
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	model := client.GenerativeModel(routeModel)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(routeTemperature)
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Close() {
	_ = p.client.Close()
}

// EstimateRoute asks Gemini for the road distance and driving time between pickup and drop.
func (p *GeminiProvider) EstimateRoute(ctx context.Context, pickup, drop, hint string) (*RouteResult, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(buildRoutePrompt(pickup, drop, hint)))
	if err != nil {
		return nil, fmt.Errorf("gemini generate: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return nil, errors.New("gemini returned no text")
	}
	return parseRouteResult(text)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// buildRoutePrompt asks for driving distance only; a zero distance signals an unknown place.
func buildRoutePrompt(pickup, drop, hint string) string {
	if strings.TrimSpace(hint) == "" {
		hint = "NONE"
	}
	return fmt.Sprintf(`Role: You estimate taxi trips for an outstation cab service in South India.

Trip:
- Pickup: %s
- Drop: %s
- Route hint: %s

RULES:
1. Estimate the usual DRIVING distance by road in kilometres, not the straight-line distance.
2. Estimate the driving time in minutes under normal traffic.
3. If either place cannot be identified, return "distance_km": 0. Never guess a place.
4. "description" is one short line naming the main roads or towns on the way.

Output JSON Schema:
{
  "distance_km": number,
  "duration_min": number,
  "description": "string"
}
`, pickup, drop, hint)
}

// parseRouteResult decodes the model output, tolerating markdown fences.
func parseRouteResult(raw string) (*RouteResult, error) {
	cleanJSON := cleanJSONString(raw)
	var result RouteResult
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("decode route json %q: %w", cleanJSON, err)
	}
	return &result, nil
}

// cleanJSONString strips a surrounding markdown fence.
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
