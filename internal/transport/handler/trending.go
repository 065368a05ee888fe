package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/pep299/socialspy/internal/metrics"
	"github.com/pep299/socialspy/internal/model"
	"github.com/pep299/socialspy/internal/reddit"
	"github.com/pep299/socialspy/internal/transport/middleware"
	"github.com/pep299/socialspy/internal/transport/response"
	"github.com/pep299/socialspy/internal/trending"
)

// Trending proxies the Reddit hot listing and reshapes it into the
// trending envelope. Every response carries the CORS headers.
type Trending struct {
	service *trending.Service
}

func NewTrending(service *trending.Service) *Trending {
	return &Trending{
		service: service,
	}
}

func (h *Trending) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	middleware.SetCORSHeaders(w)

	if r.Method == http.MethodOptions {
		metrics.ProxyRequestsTotal.WithLabelValues(metrics.OutcomePreflight).Inc()
		response.WriteEmpty(w, http.StatusOK)
		return
	}

	logger := log.New(funcframework.LogWriter(r.Context()), "", 0)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Printf("Reddit proxy panic: %v", rec)
			h.writeFailure(w, fmt.Errorf("internal error: %v", rec))
		}
	}()

	params := r.URL.Query()
	query := h.service.Query(params.Get("subreddit"), params.Get("limit"), params.Get("after"))

	resp, err := h.service.Fetch(r.Context(), query)
	if err != nil {
		logger.Printf("Reddit API fetch error: %v", err)
		h.writeFailure(w, err)
		return
	}

	metrics.ProxyRequestsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	if err := response.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Printf("Error writing trending response: %v", err)
	}
}

func (h *Trending) writeFailure(w http.ResponseWriter, err error) {
	metrics.ProxyRequestsTotal.WithLabelValues(metrics.OutcomeUpstreamError).Inc()
	response.WriteJSON(w, http.StatusInternalServerError, model.NewTrendingError(failureMessage(err)))
}

// failureMessage reports the upstream status error verbatim and
// any other failure with its full chain
func failureMessage(err error) string {
	var statusErr *reddit.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Error()
	}
	return err.Error()
}
