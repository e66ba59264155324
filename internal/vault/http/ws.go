package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/service"
	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/aussiebroadwan/vault/pkg/httpx"
	"github.com/aussiebroadwan/vault/pkg/slogx"
	"github.com/aussiebroadwan/vault/pkg/vaultsdk"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 512

	activityFrame = "activity"
)

// HandleTimerFeed handles GET /v1/session/ws
//
//	@Summary		Session timer feed
//	@Description	Websocket that pushes a tick every second with the seconds left, a reset after activity
//	@Description	and a final expired event. Clients send {"type":"activity"} frames to reset the timer.
//	@Description	Frames cannot set cookies: the handshake reissues the session cookie, later refreshes go
//	@Description	through POST /v1/session/activity.
//	@Tags			Session
//	@Security		SessionCookie
//	@Success		101	"Switching protocols"
//	@Failure		401	{object}	vaultsdk.ErrorResponse	"Not authenticated or session expired"
//	@Router			/v1/session/ws [get].
func (h *SessionHandler) HandleTimerFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	token := httpx.SessionToken(ctx)

	// Connecting counts as activity and guarantees a timer to subscribe to.
	act, err := h.AuthService.Activity(ctx, token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	events, unsubscribe, ok := h.Timers.Subscribe(cryptox.FingerprintToken(token))
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "Session expired")
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin(),
	}
	header := http.Header{}
	header.Add("Set-Cookie", h.Cookies.Session(token, act.ExpiresAt).String())
	conn, err := upgrader.Upgrade(w, r, header)
	if err != nil {
		unsubscribe()
		log.Warn("ws upgrade failed", "err", err)
		return
	}

	feed := &timerFeed{
		conn:        conn,
		events:      events,
		unsubscribe: unsubscribe,
		log:         log,
		activity: func(ctx context.Context) error {
			_, err := h.AuthService.Activity(ctx, token)
			return err
		},
	}
	feed.run(ctx)
}

// checkOrigin matches the CORS allow list. Without one, gorilla's
// same-origin check applies.
func (h *SessionHandler) checkOrigin() func(*http.Request) bool {
	if len(h.AllowedOrigins) == 0 {
		return nil
	}
	return func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		return origin == "" || slices.Contains(h.AllowedOrigins, origin)
	}
}

// timerFeed pumps one session's timer events to a websocket.
// Lifecycle: run -> [readPump, writePump] -> unsubscribe.
type timerFeed struct {
	conn        *websocket.Conn
	events      <-chan service.TimerEvent
	unsubscribe func()
	activity    func(ctx context.Context) error
	log         *slog.Logger
}

func (f *timerFeed) run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer f.unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		f.readPump(ctx, cancel)
	}()

	f.writePump(ctx)
	f.conn.Close()
	<-done
}

// readPump handles client frames until the connection fails.
func (f *timerFeed) readPump(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()

	f.conn.SetReadLimit(wsMaxMessageSize)
	if err := f.conn.SetReadDeadline(time.Now().Add(wsPongWait)); err != nil {
		return
	}
	f.conn.SetPongHandler(func(string) error {
		return f.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, raw, err := f.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				f.log.Debug("ws read error", "err", err)
			}
			return
		}

		var msg vaultsdk.TimerMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			f.log.Debug("ignoring malformed ws frame", "err", err)
			continue
		}
		if msg.Type != activityFrame {
			continue
		}
		if err := f.activity(ctx); err != nil {
			f.log.Info("ws activity rejected", "err", err)
			return
		}
	}
}

// writePump forwards timer events and keeps the connection alive. It ends
// after the expired event, when the subscription closes or the reader quits.
func (f *timerFeed) writePump(ctx context.Context) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.close(websocket.CloseNormalClosure, "")
			return
		case ev, ok := <-f.events:
			if !ok {
				f.close(websocket.CloseNormalClosure, "session ended")
				return
			}
			if err := f.write(vaultsdk.TimerMessage{Type: string(ev.Type), RemainingSeconds: ev.Remaining}); err != nil {
				return
			}
			if ev.Type == service.TimerExpired {
				f.close(websocket.CloseNormalClosure, "session expired")
				return
			}
		case <-ticker.C:
			if err := f.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
				return
			}
			if err := f.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (f *timerFeed) write(msg vaultsdk.TimerMessage) error {
	if err := f.conn.SetWriteDeadline(time.Now().Add(wsWriteWait)); err != nil {
		return err
	}
	return f.conn.WriteJSON(msg)
}

func (f *timerFeed) close(code int, text string) {
	_ = f.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	_ = f.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, text))
}
