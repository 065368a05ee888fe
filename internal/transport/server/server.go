package server

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pep299/socialspy/internal/application"
	"github.com/pep299/socialspy/internal/transport/middleware"
	"github.com/pep299/socialspy/internal/transport/response"
)

// Version is reported by the health endpoint
const Version = "v1.0.0"

// Routes served by the proxy
const (
	FunctionPath = "/.netlify/functions/fetchReddit"
	TrendingPath = "/api/v1/trending"
	SnapshotPath = "/api/v1/snapshots"
	HealthPath   = "/api/v1/health"
	MetricsPath  = "/metrics"
)

// NewRouter mounts the application handlers
func NewRouter(app *application.Application) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging)

	r.Handle(FunctionPath, app.TrendingHandler)
	r.Handle(TrendingPath, app.TrendingHandler)
	r.Handle(SnapshotPath, app.SnapshotHandler).Methods(http.MethodPost)
	r.Handle(HealthPath, middleware.CORS(http.HandlerFunc(healthCheck))).Methods(http.MethodGet, http.MethodOptions)
	r.Handle(MetricsPath, promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// CreateHandler creates the main HTTP handler for the application
func CreateHandler(ctx context.Context) (http.Handler, func(), error) {
	app, err := application.New(ctx)
	if err != nil {
		log.Printf("Error creating application: %v\nStack:\n%s", err, debug.Stack())
		return nil, nil, err
	}

	cleanup := func() {
		if err := app.Close(); err != nil {
			log.Printf("Error closing application: %v", err)
		}
	}

	return NewRouter(app), cleanup, nil
}

var defaultProxy = NewProxy()

// HandleRequest handles a single proxy request (for Cloud Functions).
// Any path is served by the trending handler.
func HandleRequest(w http.ResponseWriter, r *http.Request) {
	defaultProxy.ServeHTTP(w, r)
}

// HandleSnapshot runs trending snapshots (for Cloud Scheduler triggers)
func HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	app, err := application.New(r.Context())
	if err != nil {
		log.Printf("Failed to create application: %v\nStack:\n%s", err, debug.Stack())
		response.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	defer app.Close()

	app.SnapshotHandler.ServeHTTP(w, r)
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   Version,
	})
}
