package service

import (
	"fmt"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
)

// ViewEvent drives NextView.
type ViewEvent string

const (
	EventConsentAccepted   ViewEvent = "consent_accepted"
	EventConsentDeclined   ViewEvent = "consent_declined"
	EventAuthenticated     ViewEvent = "authenticated"
	EventOpenProfile       ViewEvent = "open_profile"
	EventOpenNotifications ViewEvent = "open_notifications"
	EventBack              ViewEvent = "back"
	EventLogout            ViewEvent = "logout"
	EventSessionExpired    ViewEvent = "session_expired"
	EventAcknowledge       ViewEvent = "acknowledge"
)

// ErrInvalidTransition is returned for an event the current view does not
// accept.
type ErrInvalidTransition struct {
	From  domain.View
	Event ViewEvent
}

func (e ErrInvalidTransition) Error() string {
	return fmt.Sprintf("no transition from %s on %s", e.From, e.Event)
}

// NextView is the client's screen state machine. Session expiry is
// accepted from every authenticated view.
func NextView(cur domain.View, ev ViewEvent) (domain.View, error) {
	if ev == EventSessionExpired && cur.Authenticated() {
		return domain.ViewSessionExpired, nil
	}
	if ev == EventLogout && cur.Authenticated() {
		return domain.ViewAuth, nil
	}

	switch cur {
	case domain.ViewConsent:
		switch ev {
		case EventConsentAccepted:
			return domain.ViewAuth, nil
		case EventConsentDeclined:
			return domain.ViewBlocked, nil
		}
	case domain.ViewAuth:
		if ev == EventAuthenticated {
			return domain.ViewMain, nil
		}
	case domain.ViewMain:
		switch ev {
		case EventOpenProfile:
			return domain.ViewProfile, nil
		case EventOpenNotifications:
			return domain.ViewNotifications, nil
		}
	case domain.ViewProfile, domain.ViewNotifications:
		if ev == EventBack {
			return domain.ViewMain, nil
		}
	case domain.ViewSessionExpired:
		if ev == EventAcknowledge {
			return domain.ViewAuth, nil
		}
	}
	return cur, ErrInvalidTransition{From: cur, Event: ev}
}
