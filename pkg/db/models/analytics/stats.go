package analytics

// Stats is the headline aggregate shown on the dashboard cards.
type Stats struct {
	TotalVolumeUSD float64 `json:"total_volume_usd"`
	ActiveWallets  int64   `json:"active_wallets"`
	TotalSwaps     int64   `json:"total_swaps"`
	AnomaliesCount int64   `json:"anomalies_count"`

	// Tiers records which source produced each field, keyed by JSON field name.
	Tiers map[string]Tier `json:"-"`
}

// Tier names the source a stats field was read from.
type Tier string

const (
	TierPrimary  Tier = "primary"
	TierFallback Tier = "fallback"
	TierDefault  Tier = "default"
)

// Stats field names.
const (
	FieldTotalVolumeUSD = "total_volume_usd"
	FieldActiveWallets  = "active_wallets"
	FieldTotalSwaps     = "total_swaps"
	FieldAnomaliesCount = "anomalies_count"
)
