package service

import (
	"context"
	"image"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/vault/internal/vault/domain"
	"github.com/aussiebroadwan/vault/internal/vault/kv"
	"github.com/aussiebroadwan/vault/internal/vault/store/drivers/sqlite"
	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/aussiebroadwan/vault/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "vault-service-test-")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(dir + "/pepper")
	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Now().UTC().Truncate(time.Millisecond)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.set(c.Now().Add(d))
}

type fakeTask struct {
	at        time.Time
	seq       int
	fn        func()
	cancelled bool
}

// fakeScheduler runs callbacks only when Advance moves the clock past them.
type fakeScheduler struct {
	clock *fakeClock

	mu    sync.Mutex
	seq   int
	tasks []*fakeTask
}

func newFakeScheduler(c *fakeClock) *fakeScheduler {
	return &fakeScheduler{clock: c}
}

func (s *fakeScheduler) After(d time.Duration, fn func()) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	t := &fakeTask{at: s.clock.Now().Add(d), seq: s.seq, fn: fn}
	s.tasks = append(s.tasks, t)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		t.cancelled = true
	}
}

func (s *fakeScheduler) next(target time.Time) *fakeTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	s.tasks = live
	sort.Slice(s.tasks, func(i, j int) bool {
		if s.tasks[i].at.Equal(s.tasks[j].at) {
			return s.tasks[i].seq < s.tasks[j].seq
		}
		return s.tasks[i].at.Before(s.tasks[j].at)
	})
	if len(s.tasks) == 0 || s.tasks[0].at.After(target) {
		return nil
	}
	t := s.tasks[0]
	s.tasks = s.tasks[1:]
	return t
}

// Advance moves time forward by d, firing due callbacks in order.
func (s *fakeScheduler) Advance(d time.Duration) {
	target := s.clock.Now().Add(d)
	for {
		t := s.next(target)
		if t == nil {
			break
		}
		s.clock.set(t.at)
		t.fn()
	}
	s.clock.set(target)
}

// Pending counts callbacks that are still scheduled.
func (s *fakeScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

type fixedRandom int

func (f fixedRandom) Intn(n int) int { return int(f) % n }

type fakeTrack struct {
	stops atomic.Int32
}

func (t *fakeTrack) Stop() { t.stops.Add(1) }

type fakeStream struct {
	tracks []*fakeTrack
	frame  func(ctx context.Context) (image.Image, error)
}

func (s *fakeStream) Tracks() []MediaTrack {
	out := make([]MediaTrack, len(s.tracks))
	for i, t := range s.tracks {
		out[i] = t
	}
	return out
}

func (s *fakeStream) Frame(ctx context.Context) (image.Image, error) {
	return s.frame(ctx)
}

// allStopped reports whether every track was stopped exactly once.
func (s *fakeStream) allStopped() bool {
	for _, t := range s.tracks {
		if t.stops.Load() != 1 {
			return false
		}
	}
	return true
}

type fakeCamera struct {
	stream  *fakeStream
	openErr error
	opens   atomic.Int32
}

func (c *fakeCamera) Open(ctx context.Context) (MediaStream, error) {
	c.opens.Add(1)
	if c.openErr != nil {
		return nil, c.openErr
	}
	return c.stream, nil
}

func newFakeCamera(tracks int, frame func(ctx context.Context) (image.Image, error)) *fakeCamera {
	s := &fakeStream{frame: frame}
	for range tracks {
		s.tracks = append(s.tracks, &fakeTrack{})
	}
	return &fakeCamera{stream: s}
}

func solidFrame(ctx context.Context) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 320, 240)), nil
}

type fakeLocation struct {
	loc   domain.LocationInfo
	err   error
	block bool
}

func (f fakeLocation) Locate(ctx context.Context, hint LocationHint) (domain.LocationInfo, error) {
	if f.block {
		<-ctx.Done()
		return domain.LocationInfo{}, ctx.Err()
	}
	return f.loc, f.err
}

// harness wires the services over an in-memory sqlite store, the memory
// KV and fake time.
type harness struct {
	store    *sqlite.Store
	kv       *kv.Memory
	clock    *fakeClock
	sched    *fakeScheduler
	timers   *TimerRegistry
	consents *ConsentService
	notifier *NotificationEmitter
	auth     *AuthService
	profile  *ProfileService
	entries  *EntryService
	inbox    *NotificationService
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clock := newFakeClock()
	sched := newFakeScheduler(clock)
	mem := kv.NewMemoryWithClock(clock.Now)

	signer, err := jwtx.NewHS256Signer([]byte("0123456789abcdef0123456789abcdef"), "vault")
	require.NoError(t, err)
	signer.WithClock(clock.Now)

	sealer, err := cryptox.NewSealer([]byte("test master key"))
	require.NoError(t, err)

	h := &harness{store: st, kv: mem, clock: clock, sched: sched}
	h.timers = NewTimerRegistry(sched, clock)
	h.consents = &ConsentService{Store: st, Signer: signer, Clock: clock}
	h.notifier = &NotificationEmitter{Store: st, Clock: clock}
	h.auth = &AuthService{
		Store:      st,
		KV:         mem,
		Challenges: &ChallengeService{Generator: ChallengeGenerator{Random: fixedRandom(0)}, KV: mem},
		Consents:   h.consents,
		Devices:    DeviceCollector{Location: ReportedLocation{}},
		Lockout:    DefaultLockout,
		Notifier:   h.notifier,
		Capture:    &DeterrentCapture{Clock: clock},
		Timers:     h.timers,
		Clock:      clock,
	}
	h.timers.OnExpire = h.auth.HandleExpiry
	h.profile = &ProfileService{
		Store:    st,
		Timers:   h.timers,
		Notifier: h.notifier,
		Clock:    clock,
	}
	h.entries = &EntryService{Store: st, Sealer: sealer, Clock: clock}
	h.inbox = &NotificationService{Store: st}
	t.Cleanup(h.timers.StopAll)
	return h
}

const strongPassword = "Valid123!Pass"

var testClient = ClientContext{
	UserAgent: "Mozilla/5.0 (X11; Linux x86_64)",
	Platform:  "Linux x86_64",
	Language:  "en-AU",
	Screen:    "1920x1080x24",
	Timezone:  "Australia/Sydney",
	IP:        "203.0.113.7",
}

func (h *harness) signup(t *testing.T, email string) *SessionGrant {
	t.Helper()
	g, err := h.auth.Signup(context.Background(), SignupRequest{
		Username:        "alice",
		Email:           email,
		Password:        strongPassword,
		ConfirmPassword: strongPassword,
		Client:          testClient,
	})
	require.NoError(t, err)
	return g
}

// challenge issues a challenge whose answer is always "91".
func (h *harness) challenge(t *testing.T) string {
	t.Helper()
	c, err := h.auth.Challenges.Issue(context.Background())
	require.NoError(t, err)
	require.Equal(t, "What is 7 × 13?", c.Prompt)
	return c.ID
}

func (h *harness) login(t *testing.T, email, password string) (LoginResult, error) {
	t.Helper()
	return h.auth.Login(context.Background(), LoginRequest{
		Email:           email,
		Password:        password,
		ChallengeID:     h.challenge(t),
		ChallengeAnswer: "91",
		Client:          testClient,
	})
}

func (h *harness) accept(t *testing.T, p domain.Permissions) string {
	t.Helper()
	res, err := h.consents.Accept(context.Background(), ConsentProbe{Permissions: p, TimeToDecision: 2 * time.Second})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	return res.Token
}

func requireKind(t *testing.T, err error, kind ErrorKind, msg string) *Error {
	t.Helper()
	e, ok := AsError(err)
	require.True(t, ok, "expected *service.Error, got %v", err)
	require.Equal(t, kind, e.Kind)
	if msg != "" {
		require.Equal(t, msg, e.Message)
	}
	return e
}
