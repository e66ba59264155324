package idx

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ID is a ULID in canonical string form. Rows keyed by an ID sort by the
// time they were created, which is what the notification and entry listings
// rely on for "newest first".
type ID string

// Zero represents the zero value ID, don't use this unless its a placeholder.
const Zero ID = ""

// ErrInvalid reports a malformed ULID string.
var ErrInvalid = errors.New("idx: invalid ulid")

// Generator hands out monotonic ULIDs. Two IDs minted within the same
// millisecond still compare in the order they were created.
type Generator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewGenerator builds a generator over the given entropy source. Tests pass a
// deterministic reader, production code uses the package level helpers.
func NewGenerator(entropy io.Reader) *Generator {
	return &Generator{entropy: ulid.Monotonic(entropy, 0)}
}

// NewAt mints an ID stamped with t.
func (g *Generator) NewAt(t time.Time) ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t.UTC()), g.entropy).String())
}

var (
	globalOnce sync.Once
	global     *Generator
)

func defaultGenerator() *Generator {
	globalOnce.Do(func() {
		global = NewGenerator(rand.Reader)
	})
	return global
}

// New returns a new ID stamped with the current time.
func New() ID {
	return defaultGenerator().NewAt(time.Now())
}

// NewAt returns a new ID stamped with t. Services that run on an injected
// clock use this so ids and timestamps agree.
func NewAt(t time.Time) ID {
	return defaultGenerator().NewAt(t)
}

// Parse validates s as a ULID and returns it as an ID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(s), nil
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool { return id == Zero }

// String returns the canonical string form.
func (id ID) String() string { return string(id) }

// Time extracts the embedded UTC timestamp. Invalid or zero ids yield the
// zero time.
func (id ID) Time() time.Time {
	if id.IsZero() {
		return time.Time{}
	}
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time())
}
