package analytics

// Row is one result row keyed by column name, every value already JSON safe.
type Row map[string]any

// Page is the LIMIT/OFFSET window of a list query.
type Page struct {
	Limit  int
	Offset int
}

// SwapQuery selects raw swaps. TokenAddress matches either side of the swap.
type SwapQuery struct {
	Page
	TokenAddress  string
	WalletAddress string
}

// VolumeQuery selects hourly swap volume buckets.
type VolumeQuery struct {
	Limit        int
	TokenAddress string
}

// WhaleQuery selects wallet segments.
type WhaleQuery struct {
	Page
	Segment string
}

// AnomalyQuery selects detected volume anomalies.
type AnomalyQuery struct {
	Page
	Severity     string
	TokenAddress string
}

// TokenFlowQuery selects hourly token flow snapshots.
type TokenFlowQuery struct {
	Limit        int
	TokenAddress string
}

// ProtocolHealthQuery selects daily protocol health snapshots.
type ProtocolHealthQuery struct {
	Limit int
}

// Wallet segments produced by the RFM clustering job.
const (
	SegmentWhale   = "whale"
	SegmentBot     = "bot"
	SegmentActive  = "active"
	SegmentCasual  = "casual"
	SegmentDormant = "dormant"
)

// Anomaly severities.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Token flow directions.
const (
	FlowAccumulation = "accumulation"
	FlowDistribution = "distribution"
	FlowNeutral      = "neutral"
)
