package domain

// DailySummary aggregates one calendar date.
type DailySummary struct {
	Date       string  `json:"date"`
	Officers   int     `json:"officers"`
	TotalHours float64 `json:"total_hours"`
}

// OfficerSummary aggregates one identity across the range.
type OfficerSummary struct {
	IdentityID uint    `json:"identity_id"`
	Identifier string  `json:"identifier"`
	Name       string  `json:"name"`
	TotalHours float64 `json:"total_hours"`
}

// Session is a single closed ledger row.
type Session struct {
	Identifier string  `json:"identifier,omitempty"`
	Name       string  `json:"name,omitempty"`
	Date       string  `json:"date,omitempty"`
	Hours      float64 `json:"hours"`
}

// NotAvailable is reported when a metric has no data in range.
const NotAvailable = "N/A"

// Report is the output of the report aggregator.
type Report struct {
	Daily          []DailySummary   `json:"daily"`
	Officers       []OfficerSummary `json:"officers"`
	MostActive     string           `json:"most_active"`
	Top3           []OfficerSummary `json:"top3"`
	LongestSession Session          `json:"longest_session"`
	AverageHours   float64          `json:"average_hours"`
	MostActiveDate *string          `json:"most_active_date"`
	ActiveDays     int              `json:"active_days"`
	TotalHours     float64          `json:"total_hours"`
	TotalOfficers  int              `json:"total_officers"`
}
