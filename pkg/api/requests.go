package api

import (
	"context"
	"sync"
)

// RequestKind groups requests that supersede each other.
type RequestKind int

const (
	ListRequest RequestKind = iota
	DetailRequest
	FetchRequest
)

func (k RequestKind) String() string {
	switch k {
	case DetailRequest:
		return "detail"
	case FetchRequest:
		return "fetch"
	default:
		return "list"
	}
}

// Ticket identifies one in-flight request.
type Ticket struct {
	Kind RequestKind
	Gen  uint64
	Ctx  context.Context
}

// Requests hands out monotonically increasing generations. Starting a request
// cancels the previous in-flight request of the same kind, and responses are
// only applied while their ticket is still current.
type Requests struct {
	mu      sync.Mutex
	gen     uint64
	current map[RequestKind]uint64
	cancels map[RequestKind]context.CancelFunc
}

// NewRequests returns an empty generation tracker.
func NewRequests() *Requests {
	return &Requests{
		current: make(map[RequestKind]uint64),
		cancels: make(map[RequestKind]context.CancelFunc),
	}
}

// Begin starts a request of the given kind derived from parent.
func (r *Requests) Begin(parent context.Context, kind RequestKind) Ticket {
	if parent == nil {
		parent = context.Background()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if cancel := r.cancels[kind]; cancel != nil {
		cancel()
	}
	r.gen++
	ctx, cancel := context.WithCancel(parent)
	r.current[kind] = r.gen
	r.cancels[kind] = cancel
	return Ticket{Kind: kind, Gen: r.gen, Ctx: ctx}
}

// Current reports whether t is the latest request of its kind.
func (r *Requests) Current(t Ticket) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return t.Gen != 0 && r.current[t.Kind] == t.Gen
}

// Finish releases the ticket's context. It reports whether the ticket was
// still current, i.e. whether its response should be applied.
func (r *Requests) Finish(t Ticket) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.Gen == 0 || r.current[t.Kind] != t.Gen {
		return false
	}
	if cancel := r.cancels[t.Kind]; cancel != nil {
		cancel()
	}
	delete(r.cancels, t.Kind)
	return true
}

// CancelAll cancels every in-flight request. Their tickets stop being
// current.
func (r *Requests) CancelAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for kind, cancel := range r.cancels {
		cancel()
		delete(r.cancels, kind)
		r.gen++
		r.current[kind] = r.gen
	}
}
