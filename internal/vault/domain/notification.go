package domain

import (
	"fmt"
	"strings"
	"time"
)

// Severity is ordered: Low < Medium < High < Critical.
type Severity int

const (
	SeverityLow Severity = iota + 1
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "LOW",
	SeverityMedium:   "MEDIUM",
	SeverityHigh:     "HIGH",
	SeverityCritical: "CRITICAL",
}

func (s Severity) String() string {
	if n, ok := severityNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// ParseSeverity is the inverse of String.
func ParseSeverity(s string) (Severity, error) {
	for sev, name := range severityNames {
		if strings.EqualFold(name, s) {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", s)
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	v, err := ParseSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type NotificationType string

const (
	NotificationFailedLogin    NotificationType = "FAILED_LOGIN"
	NotificationAccountLockout NotificationType = "ACCOUNT_LOCKOUT"
	NotificationNewDevice      NotificationType = "NEW_DEVICE"
	NotificationPasswordChange NotificationType = "PASSWORD_CHANGED"
	NotificationPasswordReset  NotificationType = "PASSWORD_RESET"
)

// SecurityNotification is an alert owned by an account.
type SecurityNotification struct {
	ID             string
	AccountID      string
	Type           NotificationType
	Title          string
	Message        string
	Severity       Severity
	Device         DeviceInfo
	Location       *LocationInfo
	AttemptedEmail string
	FailedAttempts int
	Screenshot     []byte // JPEG, empty when no capture was made
	Read           bool
	CreatedAt      time.Time
}

// SecurityEvent is telemetry for an attempt that has no owning account,
// e.g. a login against an unknown email.
type SecurityEvent struct {
	ID             string
	Type           NotificationType
	Title          string
	Message        string
	Severity       Severity
	Device         DeviceInfo
	Location       *LocationInfo
	AttemptedEmail string
	FailedAttempts int
	CreatedAt      time.Time
}
