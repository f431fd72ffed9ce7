package schedule

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ErrSuperseded is returned when a newer computation for the same quote
// started before this one finished; its result is thrown away.
var ErrSuperseded = errors.New("computation superseded by a newer one")

// DefaultLatestLimit caps how many quotes keep a committed result in memory.
const DefaultLatestLimit = 1024

type run struct {
	gen    uint64
	cancel context.CancelFunc
}

// Tracker keeps one in-flight computation per quote and the latest committed result.
// Committed results are kept for at most limit quotes; the oldest committed quote is evicted first.
type Tracker struct {
	mu     sync.Mutex
	gen    uint64
	limit  int
	runs   map[uuid.UUID]run
	latest map[uuid.UUID]*Result
	order  []uuid.UUID
}

func NewTracker() *Tracker {
	return NewTrackerWithLimit(DefaultLatestLimit)
}

func NewTrackerWithLimit(limit int) *Tracker {
	if limit < 1 {
		limit = 1
	}
	return &Tracker{
		limit:  limit,
		runs:   make(map[uuid.UUID]run),
		latest: make(map[uuid.UUID]*Result),
	}
}

type Ticket struct {
	tracker *Tracker
	key     uuid.UUID
	gen     uint64
	cancel  context.CancelFunc
}

// Begin registers a new computation for key and cancels the previous one.
func (t *Tracker) Begin(ctx context.Context, key uuid.UUID) (context.Context, *Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.runs[key]; ok {
		prev.cancel()
	}

	t.gen++
	runCtx, cancel := context.WithCancel(ctx)
	t.runs[key] = run{gen: t.gen, cancel: cancel}

	return runCtx, &Ticket{tracker: t, key: key, gen: t.gen, cancel: cancel}
}

func (t *Tracker) Latest(key uuid.UUID) (*Result, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	res, ok := t.latest[key]
	return res, ok
}

// Superseded reports whether a newer computation replaced this one.
func (tk *Ticket) Superseded() bool {
	tk.tracker.mu.Lock()
	defer tk.tracker.mu.Unlock()

	cur, ok := tk.tracker.runs[tk.key]
	return !ok || cur.gen != tk.gen
}

// Commit stores res as the latest result unless the ticket is stale.
func (tk *Ticket) Commit(res *Result) error {
	t := tk.tracker
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.runs[tk.key]
	if !ok || cur.gen != tk.gen {
		return ErrSuperseded
	}

	t.store(tk.key, res)
	delete(t.runs, tk.key)

	return nil
}

// store must be called with mu held.
func (t *Tracker) store(key uuid.UUID, res *Result) {
	if _, ok := t.latest[key]; ok {
		t.order = slices.DeleteFunc(t.order, func(k uuid.UUID) bool { return k == key })
	}
	t.latest[key] = res
	t.order = append(t.order, key)

	for len(t.order) > t.limit {
		delete(t.latest, t.order[0])
		t.order = t.order[1:]
	}
}

// Release frees the ticket; safe to call after Commit.
func (tk *Ticket) Release() {
	t := tk.tracker
	t.mu.Lock()
	if cur, ok := t.runs[tk.key]; ok && cur.gen == tk.gen {
		delete(t.runs, tk.key)
	}
	t.mu.Unlock()

	tk.cancel()
}
