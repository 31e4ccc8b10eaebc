package store

import (
	"context"
	"errors"
	"sync/atomic"
)

// Fallback routes through the primary store until it reports
// ErrUnavailable, then pins all further traffic to the secondary. The
// session survives in the secondary (normally in-memory) store for the
// rest of the process lifetime; durability is lost, not correctness.
type Fallback struct {
	primary   KV
	secondary KV
	degraded  atomic.Bool
}

// NewFallback wraps primary with secondary as the degraded-mode store.
func NewFallback(primary, secondary KV) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

// Degraded reports whether the primary has been abandoned.
func (f *Fallback) Degraded() bool {
	return f.degraded.Load()
}

func (f *Fallback) Get(ctx context.Context, key string) (string, error) {
	if f.degraded.Load() {
		return f.secondary.Get(ctx, key)
	}
	value, err := f.primary.Get(ctx, key)
	if errors.Is(err, ErrUnavailable) {
		f.degraded.Store(true)
		return f.secondary.Get(ctx, key)
	}
	return value, err
}

func (f *Fallback) Set(ctx context.Context, key, value string) error {
	if f.degraded.Load() {
		return f.secondary.Set(ctx, key, value)
	}
	err := f.primary.Set(ctx, key, value)
	if errors.Is(err, ErrUnavailable) {
		f.degraded.Store(true)
		return f.secondary.Set(ctx, key, value)
	}
	return err
}

func (f *Fallback) Remove(ctx context.Context, key string) error {
	if f.degraded.Load() {
		return f.secondary.Remove(ctx, key)
	}
	err := f.primary.Remove(ctx, key)
	if errors.Is(err, ErrUnavailable) {
		f.degraded.Store(true)
		return f.secondary.Remove(ctx, key)
	}
	return err
}
