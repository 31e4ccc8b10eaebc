package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/estately-app/estately-backend/api/controllers"
	"github.com/estately-app/estately-backend/api/middleware"
	"github.com/estately-app/estately-backend/internal/catalog"
	"github.com/estately-app/estately-backend/internal/session"
	"github.com/estately-app/estately-backend/pkg/config"
	"github.com/estately-app/estately-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	manager *session.Manager,
	distributor *session.Distributor,
	catalogService catalog.Service,
	gatherer prometheus.Gatherer,
	pingers ...controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, pingers...))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SessionScope(distributor))

		r.Route("/properties", func(r chi.Router) {
			r.Get("/", controllers.PropertiesList(catalogService, logg))
			r.Get("/{propertyId}", controllers.PropertyShow(catalogService, logg))
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionShow())
			r.Post("/login", controllers.SessionLogin(manager, logg))
			r.Post("/logout", controllers.SessionLogout(manager, logg))
			r.Patch("/profile", controllers.SessionProfileUpdate(manager, logg))
			r.Put("/preferences", controllers.SessionPreferencesUpdate(manager, logg))
			r.Get("/favorites", controllers.SessionFavorites())
			r.Post("/favorites/{propertyId}/toggle", controllers.SessionFavoriteToggle(manager, logg))
			r.Get("/dashboard", controllers.SessionDashboard(manager, catalogService, logg))
		})
	})

	return r
}
