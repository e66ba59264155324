package domain

// View is the screen the client should show.
type View string

const (
	ViewConsent        View = "consent"
	ViewBlocked        View = "blocked"
	ViewAuth           View = "auth"
	ViewMain           View = "main"
	ViewProfile        View = "profile"
	ViewNotifications  View = "notifications"
	ViewSessionExpired View = "session_expired"
)

// Authenticated reports whether v requires a live session.
func (v View) Authenticated() bool {
	switch v {
	case ViewMain, ViewProfile, ViewNotifications:
		return true
	}
	return false
}
