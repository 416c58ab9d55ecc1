package feedbackhttp

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"feedback_service/pkg/logger"
)

// NewRouter assembles the service's HTTP surface.
func NewRouter(h *FeedbackHandler, log *logger.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(NewLoggingMiddleware(log))
	r.Use(func(next http.Handler) http.Handler {
		return http.MaxBytesHandler(next, 1<<20) // 1 MB
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	h.RegisterRoutes(r)
	return r
}
