package types

// RegisterRequest contains the request for account registration
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

// LoginRequest contains the request for a login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CalculationRequest contains the request for a metrics calculation
type CalculationRequest struct {
	Profile ProfileSnapshot `json:"profile"`
	Goal    string          `json:"goal,omitempty"` // "maintain", "lose" or "build_muscle"
	Intake  *CurrentIntake  `json:"intake,omitempty"`
}

// SaveRecordRequest contains the request to compute and persist a record.
// Date defaults to today when empty.
type SaveRecordRequest struct {
	Profile ProfileSnapshot `json:"profile"`
	Goal    string          `json:"goal,omitempty"`
	Intake  *CurrentIntake  `json:"intake,omitempty"`
	Date    string          `json:"date,omitempty"` // YYYY-MM-DD
}

// SettingsRequest sets the application settings
type SettingsRequest struct {
	WeightTracking bool `json:"weight_tracking"`
}
