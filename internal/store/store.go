package store

import (
	"context"
	"errors"
	"fmt"
)

// Persisted keys. These names are the durable session schema and must
// stay stable across versions for session continuity.
const (
	KeyAuthState = "authState"
	KeyUserData  = "userData"
	KeyFavorites = "favorites"
)

// AuthStateAuthenticated is the only value ever written to KeyAuthState.
const AuthStateAuthenticated = "authenticated"

var (
	// ErrNotFound marks an absent key. Callers treat it as "no value",
	// never as a failure.
	ErrNotFound = errors.New("store: key not found")

	// ErrUnavailable marks an infrastructure failure (disk, quota,
	// connection). Callers must degrade rather than crash.
	ErrUnavailable = errors.New("store: unavailable")
)

// KV is the persisted store port. Each call is an independent
// synchronous operation; there is no transaction across keys.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

func unavailable(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrUnavailable, op, key, err)
}
