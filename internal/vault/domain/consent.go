package domain

import "time"

type Permissions struct {
	Camera   bool `json:"camera"`
	Location bool `json:"location"`
	Storage  bool `json:"storage"`
}

// AllGranted reports whether every permission the vault needs was granted.
func (p Permissions) AllGranted() bool {
	return p.Camera && p.Location && p.Storage
}

// Consent is immutable once recorded and is keyed by the browser session id.
type Consent struct {
	ID             string
	SessionID      string
	Accepted       bool
	Permissions    Permissions
	TimeToDecision time.Duration
	IPAddress      string
	UserAgent      string
	CreatedAt      time.Time
}
