package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aussiebroadwan/holidash/internal/dashboard/store"
	"github.com/aussiebroadwan/holidash/pkg/dashsdk"
	"github.com/aussiebroadwan/holidash/pkg/httpx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe. Ready once the user directory is published and the store, if any, answers a ping.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	dashsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	dashsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(
	startTime time.Time,
	version string,
	st store.Store,
	dir DirectoryStatus,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &dashsdk.HealthChecks{
			Database:  "disabled",
			Directory: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if st != nil {
			checks.Database = "ok"
			if err := st.Ping(r.Context()); err != nil {
				checks.Database = "error: " + err.Error()
				overallStatus = "degraded"
				statusCode = http.StatusServiceUnavailable
			}
		}

		if !dir.Ready() {
			checks.Directory = "error: not loaded"
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		} else {
			checks.Directory = fmt.Sprintf("ok: %d users", dir.Len())
		}

		httpx.WriteJSON(w, statusCode, dashsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
