package models

// Camera represents a single MV camera device as returned by the
// organization devices endpoint.
type Camera struct {
	Serial      string `json:"serial"`
	Name        string `json:"name"` // may be empty; cameras are not required to be named
	Model       string `json:"model"`
	NetworkID   string `json:"networkId"`
	ProductType string `json:"productType"`
	MAC         string `json:"mac"`
	Firmware    string `json:"firmware"`
}
