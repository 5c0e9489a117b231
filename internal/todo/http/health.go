package http

import (
	"net/http"
	"time"

	"github.com/tickbox/tickbox/internal/todo/store"
	"github.com/tickbox/tickbox/pkg/httpx"
)

type healthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
}

// LivezHandler is the liveness probe; it answers 200 whenever the
// process is up.
//
//	@Summary		Liveness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	object{status=string,uptime=string,version=string}
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler is the readiness probe; it reports degraded when the
// document store is unreachable.
//
//	@Summary		Readiness probe
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	object{status=string,uptime=string,version=string}
//	@Failure		503	{object}	object{status=string,uptime=string,version=string}
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, healthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
