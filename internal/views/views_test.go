package views

import (
	"context"
	"testing"

	"github.com/estately-app/estately-backend/internal/catalog"
	"github.com/estately-app/estately-backend/internal/session"
	"github.com/estately-app/estately-backend/internal/users"
	pkgerrors "github.com/estately-app/estately-backend/pkg/errors"
)

func sessionWithFavorites(favorites ...string) session.Session {
	user := users.User{ID: "u1", Email: "ana@example.com", Favorites: favorites}
	return session.Session{
		State:           session.StateAuthenticated,
		IsAuthenticated: true,
		User:            &user,
	}
}

func TestResolveFavoriteStatusPrecedence(t *testing.T) {
	sess := sessionWithFavorites("3")

	tests := []struct {
		name     string
		override []string
		id       string
		want     bool
	}{
		{name: "override wins over session", override: []string{"9"}, id: "9", want: true},
		{name: "empty override masks session favorite", override: []string{}, id: "3", want: false},
		{name: "nil override falls through to session", override: nil, id: "3", want: true},
		{name: "absent everywhere", override: nil, id: "9", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveFavoriteStatus(tt.override, sess, tt.id); got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestResolveFavoriteStatusWithoutUser(t *testing.T) {
	sess := session.Session{State: session.StateGuest}
	if ResolveFavoriteStatus(nil, sess, "3") {
		t.Fatalf("no user and no override must resolve to false")
	}
	if !ResolveFavoriteStatus([]string{"3"}, sess, "3") {
		t.Fatalf("override must work without a user")
	}
}

type recordingToggler struct {
	toggled []string
}

func (r *recordingToggler) ToggleFavorite(_ context.Context, propertyID string) {
	r.toggled = append(r.toggled, propertyID)
}

func TestPropertyCardToggleRoutesToSession(t *testing.T) {
	toggler := &recordingToggler{}
	card := NewPropertyCard(PropertyCardParams{
		Property: catalog.Property{ID: "3", Title: "Seaside Flat"},
		Session:  sessionWithFavorites("3"),
		Toggler:  toggler,
	})

	if !card.IsFavorited {
		t.Fatalf("expected card favorited from session")
	}

	card.Toggle(context.Background())
	if len(toggler.toggled) != 1 || toggler.toggled[0] != "3" {
		t.Fatalf("toggle should reach the session manager, got %v", toggler.toggled)
	}
}

func TestPropertyCardOverrideBypassesSession(t *testing.T) {
	toggler := &recordingToggler{}
	var overrideCalls []string
	card := NewPropertyCard(PropertyCardParams{
		Property:         catalog.Property{ID: "3"},
		Session:          sessionWithFavorites("3"),
		FavoriteOverride: []string{},
		OnFavorite:       func(id string) { overrideCalls = append(overrideCalls, id) },
		Toggler:          toggler,
	})

	if card.IsFavorited {
		t.Fatalf("empty override should mask the session favorite")
	}

	card.Toggle(context.Background())
	if len(toggler.toggled) != 0 {
		t.Fatalf("override toggle must not touch the session, got %v", toggler.toggled)
	}
	if len(overrideCalls) != 1 || overrideCalls[0] != "3" {
		t.Fatalf("override callback not invoked, got %v", overrideCalls)
	}
}

func TestNewHeader(t *testing.T) {
	h := NewHeader(sessionWithFavorites("3", "7"))
	if !h.IsAuthenticated || h.FavoriteCount != 2 {
		t.Fatalf("unexpected header %+v", h)
	}
	if h.DisplayName != "ana@example.com" {
		t.Fatalf("expected email fallback display name, got %q", h.DisplayName)
	}

	empty := NewHeader(session.Session{State: session.StateGuest})
	if empty.IsAuthenticated || empty.FavoriteCount != 0 || empty.DisplayName != "" {
		t.Fatalf("unexpected guest header %+v", empty)
	}
}

type stubCatalog struct {
	known map[string]catalog.Property
}

func (s stubCatalog) List(context.Context, catalog.ListFilter) ([]catalog.Property, error) {
	return nil, nil
}

func (s stubCatalog) FindByID(_ context.Context, id string) (catalog.Property, error) {
	if p, ok := s.known[id]; ok {
		return p, nil
	}
	return catalog.Property{}, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
}

func (s stubCatalog) GuestProfile(context.Context) (users.User, error) {
	return users.User{}, pkgerrors.New(pkgerrors.CodeNotFound, "no guest profile")
}

func TestNewDashboardSkipsVanishedProperties(t *testing.T) {
	properties := stubCatalog{known: map[string]catalog.Property{
		"3": {ID: "3", Title: "Seaside Flat"},
	}}

	d, err := NewDashboard(context.Background(), sessionWithFavorites("3", "gone"), properties, &recordingToggler{})
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(d.Favorites) != 1 || d.Favorites[0].Property.ID != "3" {
		t.Fatalf("expected single resolved favorite, got %+v", d.Favorites)
	}
	if d.Profile == nil || d.Profile.ID != "u1" {
		t.Fatalf("expected profile section, got %+v", d.Profile)
	}
}

func TestNewDashboardWithoutUser(t *testing.T) {
	d, err := NewDashboard(context.Background(), session.Session{State: session.StateGuest}, stubCatalog{}, nil)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Profile != nil || len(d.Favorites) != 0 {
		t.Fatalf("guest dashboard should be empty, got %+v", d)
	}
}
