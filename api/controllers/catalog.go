package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/estately-app/estately-backend/api/responses"
	"github.com/estately-app/estately-backend/internal/catalog"
	"github.com/estately-app/estately-backend/internal/session"
	"github.com/estately-app/estately-backend/internal/views"
	pkgerrors "github.com/estately-app/estately-backend/pkg/errors"
	"github.com/estately-app/estately-backend/pkg/logger"
)

// propertyCardResponse is a property row resolved against the active
// session's favorites.
type propertyCardResponse struct {
	catalog.Property
	IsFavorited bool `json:"is_favorited"`
}

// PropertiesList returns the catalog, optionally filtered by type or
// featured flag, with each row's favorited state resolved against the
// current session snapshot.
func PropertiesList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		filter := catalog.ListFilter{
			PropertyType: strings.TrimSpace(r.URL.Query().Get("property_type")),
		}
		if featuredStr := strings.TrimSpace(r.URL.Query().Get("featured")); featuredStr != "" {
			value, err := strconv.ParseBool(featuredStr)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "featured must be a boolean"))
				return
			}
			filter.FeaturedOnly = value
		}

		properties, err := svc.List(ctx, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sess := session.FromContext(ctx).Current()
		cards := make([]propertyCardResponse, 0, len(properties))
		for _, p := range properties {
			cards = append(cards, propertyCardResponse{
				Property:    p,
				IsFavorited: views.ResolveFavoriteStatus(nil, sess, p.ID),
			})
		}
		responses.WriteSuccess(w, map[string]any{"properties": cards})
	}
}

// PropertyShow returns a single property by id.
func PropertyShow(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "propertyId"))
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "property id is required"))
			return
		}

		property, err := svc.FindByID(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sess := session.FromContext(ctx).Current()
		responses.WriteSuccess(w, propertyCardResponse{
			Property:    property,
			IsFavorited: views.ResolveFavoriteStatus(nil, sess, property.ID),
		})
	}
}
