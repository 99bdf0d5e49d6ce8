package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sjsu-mhc/concierge/internal/analysis/crisis"
	chatHandler "github.com/sjsu-mhc/concierge/internal/handler/chat"
	checkinHandler "github.com/sjsu-mhc/concierge/internal/handler/checkin"
	consentHandler "github.com/sjsu-mhc/concierge/internal/handler/consent"
	planHandler "github.com/sjsu-mhc/concierge/internal/handler/plan"
	middlewarePkg "github.com/sjsu-mhc/concierge/internal/middleware"
	"github.com/sjsu-mhc/concierge/internal/service/assistant"
	"github.com/sjsu-mhc/concierge/internal/service/mediator"
	"github.com/sjsu-mhc/concierge/internal/service/session"
	"github.com/sjsu-mhc/concierge/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store *session.Store, detector *crisis.Detector, gateway assistant.Gateway, mediatorSvc *mediator.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   "SJSU Mental Health Concierge API",
		})
	})

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(mediatorSvc, store, gateway, detector).RegisterRoutes(api)
		consentHandler.New(store).RegisterRoutes(api)
		planHandler.New().RegisterRoutes(api)
		checkinHandler.New().RegisterRoutes(api)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "Endpoint not found",
			"message": "Cannot " + r.Method + " " + r.URL.Path,
		})
	})

	return r
}
