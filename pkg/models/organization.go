package models

// Organization represents a single Meraki dashboard organization.
// The v1 API returns these as a bare JSON array (no wrapper object).
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}
