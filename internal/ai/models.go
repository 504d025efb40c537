package ai

// RouteResult captures the structured output from the AI model.
type RouteResult struct {
	// DistanceKm is the estimated road distance. Zero means the model could not estimate it.
	DistanceKm float64 `json:"distance_km"`

	// DurationMin is the estimated driving time in minutes.
	DurationMin float64 `json:"duration_min"`

	// Description is a short summary of the route (e.g. "via NH48").
	Description string `json:"description"`
}
