// Package listview holds the per-screen filter, pagination and fetch state of
// the console's list pages.
package listview

import (
	"context"
	"sync"
	"time"

	"github.com/harentsoaR/medics-admin/internal/models"
)

type FetchFunc[T any] func(ctx context.Context, st State) (models.Page[T], error)

type Snapshot[T any] struct {
	State State  `json:"state"`
	Rows  []T    `json:"rows"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
	Err   error  `json:"-"`
	Seq   uint64 `json:"-"`
}

func (s Snapshot[T]) Empty() bool {
	return len(s.Rows) == 0 && s.Error == ""
}

// Pages is the page count implied by the server-reported total.
func (s Snapshot[T]) Pages() int {
	return models.Page[T]{Total: s.Total, Limit: s.State.Limit}.Pages()
}

// Loader tracks the list loads of one session. Every Load fetches exactly the
// state it was given and returns that result to its caller. Current only moves
// forward: a result that arrives after a later-issued load has been applied is
// not recorded.
type Loader[T any] struct {
	fetch   FetchFunc[T]
	failMsg string

	mu       sync.Mutex
	seq      uint64
	applied  uint64
	inflight map[uint64]context.CancelFunc
	snap     Snapshot[T]
	lastUsed time.Time
}

func NewLoader[T any](fetch FetchFunc[T], failMsg string) *Loader[T] {
	return &Loader[T]{
		fetch:    fetch,
		failMsg:  failMsg,
		inflight: make(map[uint64]context.CancelFunc),
		snap:     Snapshot[T]{Rows: []T{}},
	}
}

// Load fetches st. The fetch ends early when ctx is cancelled (the caller went
// away) or when the session is dropped.
func (l *Loader[T]) Load(ctx context.Context, st State) Snapshot[T] {
	st = st.normalized()
	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	l.mu.Lock()
	l.seq++
	token := l.seq
	l.inflight[token] = cancel
	l.mu.Unlock()

	page, err := l.fetch(fetchCtx, st)

	snap := Snapshot[T]{State: st, Rows: []T{}, Seq: token}
	if err != nil {
		snap.Err = err
		snap.Error = l.failMsg
	} else {
		if page.Data != nil {
			snap.Rows = page.Data
		}
		snap.Total = page.Total
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.inflight, token)
	if token > l.applied {
		l.applied = token
		l.snap = snap
	}
	return snap
}

// Current returns the last applied snapshot.
func (l *Loader[T]) Current() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

func (l *Loader[T]) touch(now time.Time) {
	l.mu.Lock()
	l.lastUsed = now
	l.mu.Unlock()
}

func (l *Loader[T]) idleSince() time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastUsed
}

func (l *Loader[T]) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for token, cancel := range l.inflight {
		cancel()
		delete(l.inflight, token)
	}
}
