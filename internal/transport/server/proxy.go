package server

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/pep299/socialspy/internal/application"
	"github.com/pep299/socialspy/internal/config"
	"github.com/pep299/socialspy/internal/metrics"
	"github.com/pep299/socialspy/internal/model"
	"github.com/pep299/socialspy/internal/transport/handler"
	"github.com/pep299/socialspy/internal/transport/middleware"
	"github.com/pep299/socialspy/internal/transport/response"
)

// Proxy is the Cloud Function form of the trending handler. The handler
// is built on first use and reused for the life of the instance; only
// the Reddit client and trending service are set up.
type Proxy struct {
	once    sync.Once
	handler http.Handler
	err     error
}

// NewProxy returns a proxy that has not been set up yet
func NewProxy() *Proxy {
	return &Proxy{}
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SetCORSHeaders(w)

	// Pre-flight never depends on setup
	if r.Method == http.MethodOptions {
		metrics.ProxyRequestsTotal.WithLabelValues(metrics.OutcomePreflight).Inc()
		response.WriteEmpty(w, http.StatusOK)
		return
	}

	h, err := p.load()
	if err != nil {
		logger := log.New(funcframework.LogWriter(r.Context()), "", 0)
		logger.Printf("Reddit proxy setup failed: %v", err)
		metrics.ProxyRequestsTotal.WithLabelValues(metrics.OutcomeSetupError).Inc()
		response.WriteJSON(w, http.StatusInternalServerError, model.NewTrendingError(err.Error()))
		return
	}

	h.ServeHTTP(w, r)
}

func (p *Proxy) load() (http.Handler, error) {
	p.once.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			p.err = fmt.Errorf("loading config: %w", err)
			return
		}
		p.handler = handler.NewTrending(application.NewTrendingService(cfg))
	})
	return p.handler, p.err
}
