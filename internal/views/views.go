package views

import (
	"context"

	"github.com/estately-app/estately-backend/internal/catalog"
	"github.com/estately-app/estately-backend/internal/session"
	"github.com/estately-app/estately-backend/internal/users"
)

// FavoriteToggler is the mutation surface consumers call back into;
// the session manager satisfies it.
type FavoriteToggler interface {
	ToggleFavorite(ctx context.Context, propertyID string)
}

// PropertyCardParams configures one property display surface.
// FavoriteOverride and OnFavorite let detached surfaces (showcase,
// preview dashboards) carry synthetic favorites without ever touching
// the live session.
type PropertyCardParams struct {
	Property         catalog.Property
	Session          session.Session
	FavoriteOverride []string
	OnFavorite       func(propertyID string)
	Toggler          FavoriteToggler
}

// PropertyCard is the resolved view model for a single property.
type PropertyCard struct {
	Property    catalog.Property
	IsFavorited bool

	onFavorite func(propertyID string)
	toggler    FavoriteToggler
}

// NewPropertyCard resolves the card's favorited flag once, at build time.
func NewPropertyCard(params PropertyCardParams) PropertyCard {
	return PropertyCard{
		Property:    params.Property,
		IsFavorited: ResolveFavoriteStatus(params.FavoriteOverride, params.Session, params.Property.ID),
		onFavorite:  params.OnFavorite,
		toggler:     params.Toggler,
	}
}

// Toggle routes the favorite action: the override callback when one was
// supplied, otherwise the live session manager.
func (c PropertyCard) Toggle(ctx context.Context) {
	if c.onFavorite != nil {
		c.onFavorite(c.Property.ID)
		return
	}
	if c.toggler != nil {
		c.toggler.ToggleFavorite(ctx, c.Property.ID)
	}
}

// Header summarizes the session for the page chrome.
type Header struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	DisplayName     string `json:"display_name"`
	FavoriteCount   int    `json:"favorite_count"`
}

// NewHeader derives the header from a session snapshot.
func NewHeader(sess session.Session) Header {
	h := Header{IsAuthenticated: sess.IsAuthenticated}
	if sess.User != nil {
		h.DisplayName = sess.User.DisplayName()
		h.FavoriteCount = len(sess.User.Favorites)
	}
	return h
}

// Dashboard is the account page view model: profile, communication
// preferences, and the favorited properties resolved against the
// catalog.
type Dashboard struct {
	Profile     *users.User
	Preferences users.CommunicationPreferences
	Favorites   []PropertyCard
}

// NewDashboard resolves the dashboard for the given session. Favorited
// ids no longer present in the catalog are skipped rather than failing
// the whole page.
func NewDashboard(ctx context.Context, sess session.Session, properties catalog.Service, toggler FavoriteToggler) (Dashboard, error) {
	d := Dashboard{}
	if sess.User == nil {
		return d, nil
	}
	d.Profile = sess.User
	d.Preferences = sess.User.CommunicationPrefs

	for _, id := range sess.User.Favorites {
		property, err := properties.FindByID(ctx, id)
		if err != nil {
			continue
		}
		d.Favorites = append(d.Favorites, NewPropertyCard(PropertyCardParams{
			Property: property,
			Session:  sess,
			Toggler:  toggler,
		}))
	}
	return d, nil
}
