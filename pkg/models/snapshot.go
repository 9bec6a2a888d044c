package models

// Snapshot is the response of a generateSnapshot request. The URL is
// pre-signed and only valid for a short window around Expiry.
type Snapshot struct {
	URL    string `json:"url"`
	Expiry string `json:"expiry"`
}
