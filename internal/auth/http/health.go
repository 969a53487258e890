package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/oauthd/internal/auth/store"
	"github.com/aussiebroadwan/oauthd/pkg/authsdk"
	"github.com/aussiebroadwan/oauthd/pkg/httpx"
	"github.com/aussiebroadwan/oauthd/pkg/jwtx"
)

const readyTimeout = 2 * time.Second

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Always 200 while the process is serving requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Reports whether the database answers and the session signing key is loaded.
//	@Description	Any failed check turns the response into a 503.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store, keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		checks := &authsdk.HealthChecks{Database: "ok", Signer: "ok"}
		if err := st.Ping(ctx); err != nil {
			checks.Database = "error: " + err.Error()
		}
		if !keys.IsReady() {
			checks.Signer = "error: no signing key loaded"
		}

		resp := authsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		}
		status := http.StatusOK
		if checks.Database != "ok" || checks.Signer != "ok" {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, status, resp)
	}
}
