package types

// AuthResponse contains the token returned after a successful login
type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// SaveRecordResponse returns the stored record id together with the
// freshly computed metrics
type SaveRecordResponse struct {
	RecordID int64           `json:"record_id"`
	Metrics  *DerivedMetrics `json:"metrics"`
}

// SummaryResponse aggregates a user's history for the summary view
type SummaryResponse struct {
	Username     string        `json:"username"`
	RecordCount  int           `json:"record_count"`
	MeanWeightKg float64       `json:"mean_weight_kg"`
	Latest       *HealthRecord `json:"latest,omitempty"`
}
