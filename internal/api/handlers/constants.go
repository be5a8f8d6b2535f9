package handlers

const (
	// Request timeout for the recommendation pipeline
	recommendationTimeoutSecs = 5

	// Endpoint labels for metrics
	endpointRecommendations = "/recommendations"
	endpointAnalyze         = "/progressions/analyze"
)
