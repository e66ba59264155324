package vaultsdk

import "time"

// ============================================================================
// Envelope
// ============================================================================

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`

	// RemainingMinutes is set when the account is locked.
	RemainingMinutes int `json:"remaining_minutes,omitempty"`

	// Challenge replaces a challenge that a failed login used up.
	Challenge *ChallengeResponse `json:"challenge,omitempty"`
}

// MessageResponse is returned by operations with nothing else to report.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ============================================================================
// Health
// ============================================================================

// HealthChecks reports the status of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
	KV       string `json:"kv"`
}

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// ============================================================================
// Consent and session views
// ============================================================================

// View names the screen the client should show.
const (
	ViewConsent        = "consent"
	ViewBlocked        = "blocked"
	ViewAuth           = "auth"
	ViewMain           = "main"
	ViewSessionExpired = "session_expired"
)

// Permissions are the browser capabilities the consent prompt asks for.
type Permissions struct {
	Camera   bool `json:"camera"`
	Location bool `json:"location"`
	Storage  bool `json:"storage"`
}

// ConsentRequest is the browser's answer to the consent prompt.
type ConsentRequest struct {
	Permissions      Permissions `json:"permissions"`
	TimeToDecisionMs int64       `json:"time_to_decision_ms"`
}

// ConsentResponse carries the view to show after a consent decision.
type ConsentResponse struct {
	Success bool   `json:"success"`
	View    string `json:"view"`
}

// SessionResponse describes what a returning browser should see.
type SessionResponse struct {
	Success          bool             `json:"success"`
	View             string           `json:"view"`
	User             *AccountResponse `json:"user,omitempty"`
	RemainingSeconds int              `json:"remaining_seconds,omitempty"`
}

// ActivityResponse is returned after the idle timer was reset.
type ActivityResponse struct {
	Success          bool `json:"success"`
	RemainingSeconds int  `json:"remaining_seconds"`
}

// TimerMessage is a frame of the session timer websocket. The server sends
// "tick", "reset" and "expired"; the client sends "activity".
type TimerMessage struct {
	Type             string `json:"type"`
	RemainingSeconds int    `json:"remaining_seconds,omitempty"`
}

// ============================================================================
// Authentication
// ============================================================================

// ClientInfo is the device context the browser reports with signup and
// login. Latitude and Longitude are only sent when the location permission
// was granted.
type ClientInfo struct {
	UserAgent string   `json:"user_agent,omitempty"`
	Platform  string   `json:"platform,omitempty"`
	Language  string   `json:"language,omitempty"`
	Screen    string   `json:"screen,omitempty"`
	Timezone  string   `json:"timezone,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// ChallengeResponse is a human-verification challenge.
type ChallengeResponse struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
}

type SignupRequest struct {
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	ConfirmPassword string     `json:"confirm_password"`
	Client          ClientInfo `json:"client"`
}

// LoginRequest carries the login form. Capture is an optional base64 JPEG
// or PNG still from the camera, used only for deterrent photos.
type LoginRequest struct {
	Email           string     `json:"email"`
	Password        string     `json:"password"`
	ChallengeID     string     `json:"challenge_id"`
	ChallengeAnswer string     `json:"challenge_answer"`
	Capture         string     `json:"capture,omitempty"`
	Client          ClientInfo `json:"client"`
}

// AuthResponse is returned by a successful signup or login.
type AuthResponse struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	View      string          `json:"view"`
	User      AccountResponse `json:"user"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// ============================================================================
// Profile and password reset
// ============================================================================

type AccountResponse struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	SessionTimeout int       `json:"session_timeout"`
	CreatedAt      time.Time `json:"created_at"`
}

// ProfileResponse wraps the account for profile endpoints.
type ProfileResponse struct {
	Success bool            `json:"success"`
	User    AccountResponse `json:"user"`
}

// ProfileUpdateRequest leaves empty fields unchanged.
type ProfileUpdateRequest struct {
	Username       string `json:"username,omitempty"`
	Email          string `json:"email,omitempty"`
	SessionTimeout int    `json:"session_timeout,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type ResetRequest struct {
	Email string `json:"email"`
}

type ResetConfirmRequest struct {
	Email           string `json:"email"`
	Code            string `json:"code"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ============================================================================
// Password entries
// ============================================================================

type EntryRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Description string `json:"description,omitempty"`
}

// EntryUpdateRequest is a partial update; nil fields are left unchanged.
type EntryUpdateRequest struct {
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	Description *string `json:"description,omitempty"`
}

type EntryResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// EntryEnvelope wraps a single entry.
type EntryEnvelope struct {
	Success bool          `json:"success"`
	Entry   EntryResponse `json:"entry"`
}

type PaginationResponse struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type EntryListResponse struct {
	Success    bool               `json:"success"`
	Entries    []EntryResponse    `json:"entries"`
	Pagination PaginationResponse `json:"pagination"`
}

// ============================================================================
// Notifications
// ============================================================================

type DeviceInfo struct {
	UserAgent   string `json:"userAgent"`
	Platform    string `json:"platform"`
	Language    string `json:"language"`
	Screen      string `json:"screen"`
	Timezone    string `json:"timezone"`
	Fingerprint string `json:"fingerprint"`
}

type LocationInfo struct {
	IP        string  `json:"ip"`
	Country   string  `json:"country,omitempty"`
	City      string  `json:"city,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NotificationResponse is a security notification. HasScreenshot tells
// whether a deterrent photo can be fetched from the screenshot endpoint.
type NotificationResponse struct {
	ID             string        `json:"id"`
	Type           string        `json:"type"`
	Title          string        `json:"title"`
	Message        string        `json:"message"`
	Severity       string        `json:"severity"`
	Device         DeviceInfo    `json:"device"`
	Location       *LocationInfo `json:"location,omitempty"`
	AttemptedEmail string        `json:"attempted_email,omitempty"`
	FailedAttempts int           `json:"failed_attempts,omitempty"`
	HasScreenshot  bool          `json:"has_screenshot"`
	Read           bool          `json:"read"`
	CreatedAt      time.Time     `json:"created_at"`
}

type NotificationEnvelope struct {
	Success      bool                 `json:"success"`
	Notification NotificationResponse `json:"notification"`
}

type NotificationListResponse struct {
	Success       bool                   `json:"success"`
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
}

type CountResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count"`
}
