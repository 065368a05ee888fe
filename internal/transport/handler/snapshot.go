package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"

	"github.com/pep299/socialspy/internal/snapshot"
	"github.com/pep299/socialspy/internal/transport/response"
)

// Snapshot triggers a trending snapshot run, for schedulers that call in
// over HTTP instead of the in-process cron
type Snapshot struct {
	job *snapshot.Job
}

func NewSnapshot(job *snapshot.Job) *Snapshot {
	return &Snapshot{
		job: job,
	}
}

type snapshotRequest struct {
	Subreddit string `json:"subreddit"`
}

func (h *Snapshot) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	logger := log.New(funcframework.LogWriter(r.Context()), "", 0)

	// An empty body snapshots every configured subreddit; a named one
	// must be among them
	var payload snapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		response.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if payload.Subreddit != "" {
		err := h.job.Run(r.Context(), payload.Subreddit)
		if errors.Is(err, snapshot.ErrUnknownSubreddit) {
			response.WriteError(w, http.StatusBadRequest, "Subreddit is not configured for snapshots")
			return
		}
		if err != nil {
			logger.Printf("Snapshot failed for r/%s: %v", payload.Subreddit, err)
			response.WriteError(w, http.StatusBadGateway, err.Error())
			return
		}
		response.WriteSuccess(w, "Snapshot stored", map[string]interface{}{
			"subreddits": []string{payload.Subreddit},
		})
		return
	}

	subreddits := h.job.Subreddits()
	succeeded := h.job.RunOnce(r.Context())
	logger.Printf("Snapshot run finished: %d/%d succeeded", succeeded, len(subreddits))

	if succeeded == 0 && len(subreddits) > 0 {
		response.WriteError(w, http.StatusBadGateway, "All snapshots failed")
		return
	}
	response.WriteSuccess(w, "Snapshots stored", map[string]interface{}{
		"subreddits": subreddits,
		"succeeded":  succeeded,
	})
}
