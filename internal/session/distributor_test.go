package session

import (
	"context"
	"testing"

	"github.com/estately-app/estately-backend/internal/users"
)

func TestSubscribeDeliversCurrentSnapshotImmediately(t *testing.T) {
	d := NewDistributor()

	var seen []State
	unsubscribe := d.Subscribe(func(s Session) {
		seen = append(seen, s.State)
	})
	defer unsubscribe()

	if len(seen) != 1 || seen[0] != StateLoading {
		t.Fatalf("expected immediate Loading snapshot, got %v", seen)
	}

	d.Publish(Session{State: StateGuest})
	if len(seen) != 2 || seen[1] != StateGuest {
		t.Fatalf("expected Guest broadcast, got %v", seen)
	}
}

func TestPublishReachesAllSubscribersBeforeReturning(t *testing.T) {
	d := NewDistributor()

	var first, second Session
	defer d.Subscribe(func(s Session) { first = s })()
	defer d.Subscribe(func(s Session) { second = s })()

	user := users.User{ID: "u1", Favorites: []string{"3"}}
	d.Publish(Session{State: StateAuthenticated, IsAuthenticated: true, User: &user})

	if !first.IsAuthenticated || !second.IsAuthenticated {
		t.Fatalf("both subscribers must see the new snapshot synchronously")
	}
	if len(first.Favorites()) != 1 || len(second.Favorites()) != 1 {
		t.Fatalf("subscribers observed stale favorites: %v / %v", first.Favorites(), second.Favorites())
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	d := NewDistributor()

	calls := 0
	unsubscribe := d.Subscribe(func(Session) { calls++ })
	unsubscribe()

	d.Publish(Session{State: StateGuest})
	if calls != 1 {
		t.Fatalf("expected only the initial delivery, got %d calls", calls)
	}
}

func TestFromContextRoundTrip(t *testing.T) {
	d := NewDistributor()
	ctx := NewContext(context.Background(), d)
	if got := FromContext(ctx); got != d {
		t.Fatalf("expected the scoped distributor back")
	}
}

func TestFromContextPanicsOutsideScope(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when reading session state outside the scope")
		}
	}()
	FromContext(context.Background())
}
