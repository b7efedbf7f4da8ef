package listview

import (
	"sync"
	"time"
)

// Registry keeps one Loader per session for a single screen.
type Registry[T any] struct {
	fetch   FetchFunc[T]
	failMsg string
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	loaders map[string]*Loader[T]
}

func NewRegistry[T any](fetch FetchFunc[T], failMsg string, ttl time.Duration) *Registry[T] {
	return &Registry[T]{
		fetch:   fetch,
		failMsg: failMsg,
		ttl:     ttl,
		now:     time.Now,
		loaders: make(map[string]*Loader[T]),
	}
}

// Get returns the session's loader, creating it on first use. Loaders idle for
// longer than the TTL are evicted on the way.
func (r *Registry[T]) Get(sid string) *Loader[T] {
	now := r.now()
	if sid == "" {
		return NewLoader(r.fetch, r.failMsg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweep(now)
	l, ok := r.loaders[sid]
	if !ok {
		l = NewLoader(r.fetch, r.failMsg)
		r.loaders[sid] = l
	}
	l.touch(now)
	return l
}

// Drop forgets the session's loader and cancels its in-flight fetch.
func (r *Registry[T]) Drop(sid string) {
	r.mu.Lock()
	l, ok := r.loaders[sid]
	delete(r.loaders, sid)
	r.mu.Unlock()
	if ok {
		l.stop()
	}
}

func (r *Registry[T]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loaders)
}

func (r *Registry[T]) sweep(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for sid, l := range r.loaders {
		if now.Sub(l.idleSince()) > r.ttl {
			delete(r.loaders, sid)
			l.stop()
		}
	}
}
