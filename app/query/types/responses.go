package types

// FreshnessResponse reports how far behind the newest raw event is.
// SecondsSinceLastEvent is always present and null when unknown.
type FreshnessResponse struct {
	SecondsSinceLastEvent *int64  `json:"seconds_since_last_event"`
	LastEventAt           *string `json:"last_event_at,omitempty"`
	Message               string  `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

type IndexResponse struct {
	Service   string   `json:"service"`
	Endpoints []string `json:"endpoints"`
}

const (
	FreshnessNoEvents = "No events yet"
	FreshnessError    = "Error"
)
