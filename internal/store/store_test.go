package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeRaw(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o600)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	if _, err := kv.Get(ctx, KeyAuthState); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty store, got %v", err)
	}

	if err := kv.Set(ctx, KeyAuthState, AuthStateAuthenticated); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, err := kv.Get(ctx, KeyAuthState)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != AuthStateAuthenticated {
		t.Fatalf("unexpected value %q", value)
	}

	if err := kv.Remove(ctx, KeyAuthState); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := kv.Get(ctx, KeyAuthState); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	kv, err := NewFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Set(ctx, KeyUserData, `{"id":"u1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, KeyFavorites, `["3"]`); err != nil {
		t.Fatalf("set favorites: %v", err)
	}

	reopened, err := NewFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	value, err := reopened.Get(ctx, KeyUserData)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if value != `{"id":"u1"}` {
		t.Fatalf("unexpected value %q", value)
	}

	if err := reopened.Remove(ctx, KeyFavorites); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := reopened.Get(ctx, KeyFavorites); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestFileStoreTreatsCorruptFileAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	kv, err := NewFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := writeRaw(path, "not json at all"); err != nil {
		t.Fatalf("seed corrupt file: %v", err)
	}

	if _, err := kv.Get(ctx, KeyAuthState); !errors.Is(err, ErrNotFound) {
		t.Fatalf("corrupt file should read as absent, got %v", err)
	}
	if err := kv.Set(ctx, KeyAuthState, AuthStateAuthenticated); err != nil {
		t.Fatalf("set over corrupt file: %v", err)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	kv, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer kv.Close()

	if _, err := kv.Get(ctx, KeyUserData); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := kv.Set(ctx, KeyUserData, `{"id":"u1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set(ctx, KeyUserData, `{"id":"u2"}`); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	value, err := kv.Get(ctx, KeyUserData)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != `{"id":"u2"}` {
		t.Fatalf("upsert did not overwrite, got %q", value)
	}
	if err := kv.Remove(ctx, KeyUserData); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := kv.Get(ctx, KeyUserData); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after remove, got %v", err)
	}
}

func TestFallbackSwitchesOnUnavailable(t *testing.T) {
	ctx := context.Background()
	broken := &brokenKV{}
	secondary := NewMemory()
	kv := NewFallback(broken, secondary)

	if kv.Degraded() {
		t.Fatalf("should not start degraded")
	}
	if err := kv.Set(ctx, KeyAuthState, AuthStateAuthenticated); err != nil {
		t.Fatalf("set should succeed via secondary: %v", err)
	}
	if !kv.Degraded() {
		t.Fatalf("expected degraded after primary failure")
	}
	value, err := kv.Get(ctx, KeyAuthState)
	if err != nil {
		t.Fatalf("get after degrade: %v", err)
	}
	if value != AuthStateAuthenticated {
		t.Fatalf("unexpected value %q", value)
	}
	if broken.calls != 1 {
		t.Fatalf("primary should not be retried once degraded, saw %d calls", broken.calls)
	}
}

type brokenKV struct {
	calls int
}

func (b *brokenKV) Get(context.Context, string) (string, error) {
	b.calls++
	return "", ErrUnavailable
}

func (b *brokenKV) Set(context.Context, string, string) error {
	b.calls++
	return ErrUnavailable
}

func (b *brokenKV) Remove(context.Context, string) error {
	b.calls++
	return ErrUnavailable
}
