package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/estately-app/estately-backend/api/responses"
	"github.com/estately-app/estately-backend/api/validators"
	"github.com/estately-app/estately-backend/internal/catalog"
	"github.com/estately-app/estately-backend/internal/session"
	"github.com/estately-app/estately-backend/internal/users"
	"github.com/estately-app/estately-backend/internal/views"
	pkgerrors "github.com/estately-app/estately-backend/pkg/errors"
	"github.com/estately-app/estately-backend/pkg/logger"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type preferencesPayload struct {
	EmailNotifications bool   `json:"email_notifications"`
	SMSNotifications   bool   `json:"sms_notifications"`
	MarketingOptIn     bool   `json:"marketing_opt_in"`
	Frequency          string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
}

type sessionResponse struct {
	State           session.State `json:"state"`
	IsAuthenticated bool          `json:"is_authenticated"`
	User            *users.User   `json:"user,omitempty"`
}

func newSessionResponse(sess session.Session) sessionResponse {
	return sessionResponse{
		State:           sess.State,
		IsAuthenticated: sess.IsAuthenticated,
		User:            sess.User,
	}
}

// SessionShow returns the current session snapshot.
func SessionShow() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context()).Current()
		responses.WriteSuccess(w, newSessionResponse(sess))
	}
}

// SessionLogin authenticates with email and password and returns the
// resulting snapshot. Payload shape is validated here; the manager only
// rejects empty credentials and concurrent attempts.
func SessionLogin(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := mgr.Login(ctx, payload.Email, payload.Password); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSessionResponse(mgr.Snapshot()))
	}
}

// SessionLogout ends the authenticated session. Always succeeds; logging
// out while logged out is a no-op.
func SessionLogout(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}
		mgr.Logout(ctx)
		responses.WriteSuccess(w, newSessionResponse(mgr.Snapshot()))
	}
}

// SessionProfileUpdate merges the submitted profile fields into the
// current user.
func SessionProfileUpdate(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var patch users.ProfilePatch
		if err := validators.DecodeJSONBody(r, &patch); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mgr.UpdateProfile(ctx, patch)
		responses.WriteSuccess(w, newSessionResponse(mgr.Snapshot()))
	}
}

// SessionPreferencesUpdate replaces the communication preferences.
func SessionPreferencesUpdate(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		var payload preferencesPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		mgr.UpdateCommunicationPreferences(ctx, users.CommunicationPreferences{
			EmailNotifications: payload.EmailNotifications,
			SMSNotifications:   payload.SMSNotifications,
			MarketingOptIn:     payload.MarketingOptIn,
			Frequency:          payload.Frequency,
		})
		responses.WriteSuccess(w, newSessionResponse(mgr.Snapshot()))
	}
}

// SessionFavoriteToggle flips the favorited state of one property.
func SessionFavoriteToggle(mgr *session.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if mgr == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session manager unavailable"))
			return
		}

		propertyID := strings.TrimSpace(chi.URLParam(r, "propertyId"))
		if propertyID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "property id is required"))
			return
		}

		mgr.ToggleFavorite(ctx, propertyID)
		sess := mgr.Snapshot()
		responses.WriteSuccess(w, map[string]any{
			"is_favorited": views.ResolveFavoriteStatus(nil, sess, propertyID),
			"favorites":    sess.Favorites(),
		})
	}
}

// SessionFavorites returns the favorited property ids.
func SessionFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := session.FromContext(r.Context()).Current()
		favorites := sess.Favorites()
		if favorites == nil {
			favorites = []string{}
		}
		responses.WriteSuccess(w, map[string]any{"favorites": favorites})
	}
}

type dashboardResponse struct {
	Header      views.Header                   `json:"header"`
	Profile     *users.User                    `json:"profile,omitempty"`
	Preferences users.CommunicationPreferences `json:"preferences"`
	Favorites   []propertyCardResponse         `json:"favorites"`
}

// SessionDashboard resolves the account page view: profile, preferences,
// and the favorited properties joined against the catalog.
func SessionDashboard(mgr *session.Manager, properties catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if properties == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		sess := session.FromContext(ctx).Current()
		dashboard, err := views.NewDashboard(ctx, sess, properties, mgr)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp := dashboardResponse{
			Header:      views.NewHeader(sess),
			Profile:     dashboard.Profile,
			Preferences: dashboard.Preferences,
			Favorites:   make([]propertyCardResponse, 0, len(dashboard.Favorites)),
		}
		for _, card := range dashboard.Favorites {
			resp.Favorites = append(resp.Favorites, propertyCardResponse{
				Property:    card.Property,
				IsFavorited: card.IsFavorited,
			})
		}
		responses.WriteSuccess(w, resp)
	}
}
