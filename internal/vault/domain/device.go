package domain

// DeviceInfo is the client snapshot attached to sessions and alerts.
type DeviceInfo struct {
	UserAgent   string `json:"userAgent"`
	Platform    string `json:"platform"`
	Language    string `json:"language"`
	Screen      string `json:"screen"`
	Timezone    string `json:"timezone"`
	Fingerprint string `json:"fingerprint"`
}

// LocationInfo is best-effort; Unknown is used when nothing is available.
type LocationInfo struct {
	IP        string  `json:"ip"`
	Country   string  `json:"country,omitempty"`
	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

const UnknownPlace = "Unknown"

// UnknownLocation is the placeholder used when location lookup fails or
// times out.
func UnknownLocation(ip string) LocationInfo {
	return LocationInfo{IP: ip, Country: UnknownPlace, City: UnknownPlace}
}
