package http

import (
	"net/http"
	"time"

	"github.com/coffeelux/auth/internal/auth/state"
	"github.com/coffeelux/auth/internal/auth/store"
	"github.com/coffeelux/auth/pkg/httpx"
)

type healthChecks struct {
	Database string `json:"database,omitempty"`
	State    string `json:"state,omitempty"`
}

type healthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *healthChecks `json:"checks,omitempty"`
}

// LivezHandler always answers 200 while the process is up.
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler reports degraded when the credential store or the state
// store stops answering.
func ReadyzHandler(startTime time.Time, version string, st store.Store, states state.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &healthChecks{Database: "ok", State: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		if err := states.Ping(r.Context()); err != nil {
			checks.State = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, healthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
