// Package identity holds the authenticated caller of a request.
//
// Each request gets its own Holder attached to its context by the
// authentication middleware. Handlers and use cases read the caller through
// Current or RequireIdentity and never see another request's identity.
package identity

import (
	"context"
	"sync"

	apperrors "github.com/allisson/meetings/internal/errors"
)

// Identity is the authenticated principal bound to a request.
type Identity struct {
	UserID   int64
	Username string
}

// Holder is a per-request slot holding at most one Identity.
type Holder struct {
	mu       sync.RWMutex
	identity Identity
	bound    bool
}

// Bind stores id as the current identity, replacing any previous one.
func (h *Holder) Bind(id Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.identity = id
	h.bound = true
}

// Current returns the bound identity, if any.
func (h *Holder) Current() (Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.identity, h.bound
}

// Clear empties the holder. Safe to call repeatedly.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.identity = Identity{}
	h.bound = false
}

type holderKey struct{}

// WithHolder returns a child context carrying a fresh, empty Holder.
func WithHolder(ctx context.Context) (context.Context, *Holder) {
	h := &Holder{}
	return context.WithValue(ctx, holderKey{}, h), h
}

// HolderFromContext returns the Holder attached to ctx, or nil.
func HolderFromContext(ctx context.Context) *Holder {
	if ctx == nil {
		return nil
	}
	h, _ := ctx.Value(holderKey{}).(*Holder)
	return h
}

// Current returns the identity bound for the request that owns ctx.
func Current(ctx context.Context) (Identity, bool) {
	h := HolderFromContext(ctx)
	if h == nil {
		return Identity{}, false
	}
	return h.Current()
}

// RequireIdentity returns the current identity or ErrUnauthorized when the
// request is anonymous.
func RequireIdentity(ctx context.Context) (Identity, error) {
	id, ok := Current(ctx)
	if !ok {
		return Identity{}, apperrors.ErrUnauthorized
	}
	return id, nil
}
