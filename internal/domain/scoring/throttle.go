package scoring

import (
	"sync"
	"time"

	"github.com/fantaprof/fantaprof-server/internal/domain/shared"
	"github.com/fantaprof/fantaprof-server/pkg/timeutil"
)

// ErrThrottled is returned when a professor's daily update window is
// still closed. The HTTP boundary maps it to 425 Too Early.
var ErrThrottled = shared.NewDomainError("scoring", "Apply", shared.ErrThrottled, "score already updated today")

// Throttle limits score updates to one per professor per calendar day in
// the configured location. The window closes on an accepted update and
// reopens at the next local midnight, so an update at 23:59 is eligible
// again one minute later.
//
// State lives only in memory: a restart forgets every window and all
// professors become updatable immediately. Entries for deleted professors
// linger until restart, which is harmless.
type Throttle struct {
	mu      sync.Mutex
	entries map[string]*throttleEntry

	loc *time.Location
	now func() time.Time
}

type throttleEntry struct {
	mu         sync.Mutex
	lastUpdate time.Time
	recorded   bool
}

// ThrottleOption configures a Throttle.
type ThrottleOption func(*Throttle)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) ThrottleOption {
	return func(t *Throttle) {
		t.now = now
	}
}

// NewThrottle creates a throttle with day boundaries in loc. A nil loc
// falls back to the process-local timezone.
func NewThrottle(loc *time.Location, opts ...ThrottleOption) *Throttle {
	if loc == nil {
		loc = time.Local
	}
	t := &Throttle{
		entries: make(map[string]*throttleEntry),
		loc:     loc,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Throttle) entry(professorID string) *throttleEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e, ok := t.entries[professorID]
	if !ok {
		e = &throttleEntry{}
		t.entries[professorID] = e
	}
	return e
}

func (t *Throttle) open(e *throttleEntry, at time.Time) bool {
	if !e.recorded {
		return true
	}
	return !at.Before(timeutil.NextMidnight(e.lastUpdate, t.loc))
}

// CanUpdate reports whether the professor's window is open right now.
// It is a point-in-time read: the answer may change before a following
// update lands. Mutating paths should use Apply instead.
func (t *Throttle) CanUpdate(professorID string) bool {
	e := t.entry(professorID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return t.open(e, t.now())
}

// Record marks an accepted update, closing the window until the next
// local midnight. Exposed for callers that serialize updates themselves.
func (t *Throttle) Record(professorID string) {
	e := t.entry(professorID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUpdate = t.now()
	e.recorded = true
}

// Apply runs fn under the professor's key lock: the window check, the
// mutation, and the recording happen as one unit, so two concurrent
// updates to the same professor cannot both pass the check. Distinct
// professors proceed in parallel.
//
// When the window is closed fn is not called and ErrThrottled is
// returned. When fn fails the window stays open.
func (t *Throttle) Apply(professorID string, fn func() error) error {
	e := t.entry(professorID)
	e.mu.Lock()
	defer e.mu.Unlock()

	now := t.now()
	if !t.open(e, now) {
		return ErrThrottled
	}
	if err := fn(); err != nil {
		return err
	}
	e.lastUpdate = now
	e.recorded = true
	return nil
}
