package httpx

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/joblane/jobboard/internal/core"
	"github.com/joblane/jobboard/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Jobs *service.JobService
	// DB and Cache back the readiness probe; both are optional.
	DB    *sql.DB
	Cache core.CacheRepository
	// AllowedOrigin enables CORS for a single browser origin when set.
	AllowedOrigin string
	Logger        *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	if services.Jobs == nil {
		panic("NewRouter: Jobs service is required") //nolint:forbidigo // Fail fast during server setup.
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	registerJobRoutes(mux, &JobHandlers{Svc: services.Jobs})
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", &ReadinessHandler{DB: services.DB, Cache: services.Cache})

	var handler http.Handler = mux
	handler = Compression()(handler)
	handler = CORS(services.AllowedOrigin)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers) {
	mux.HandleFunc("POST /api/jobs", h.CreateJob)
	mux.HandleFunc("GET /api/jobs", h.ListJobs)
	mux.HandleFunc("GET /api/jobs/{id}", h.GetJob)
	mux.HandleFunc("PATCH /api/jobs/{id}", h.UpdateJob)
	mux.HandleFunc("DELETE /api/jobs/{id}", h.DeleteJob)
	mux.HandleFunc("OPTIONS /api/jobs", optionsNoContent)
	mux.HandleFunc("OPTIONS /api/jobs/{id}", optionsNoContent)
}

// optionsNoContent satisfies preflight requests that the CORS middleware did
// not already answer (no configured origin).
func optionsNoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
