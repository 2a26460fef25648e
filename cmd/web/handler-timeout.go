package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/errors"
)

// generateTimeout bounds a plan generation request. It is shorter than writeTimeout so that the timeout response
// reaches the client before the server closes the connection.
const generateTimeout = 50 * time.Second

const timeoutBody = `{"error":"Request timed out"}`

// timeout responds with 503 Service Unavailable when the handler does not finish within d. The request context is
// cancelled so that a running generation stops early. With a flight recorder configured the trace leading up to the
// timeout is written to disk.
func (app *application) timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(h http.Handler) http.Handler {
		th := http.TimeoutHandler(h, d, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// TimeoutHandler copies the handler's headers only when it finishes in time, so this is what the
			// timeout response carries.
			w.Header().Set("Content-Type", "application/json")
			sw := newStatusResponseWriter(w)
			th.ServeHTTP(sw, r)
			if sw.statusCode != http.StatusServiceUnavailable || app.recorder == nil {
				return
			}
			if _, err := app.recorder.Capture(r.Context(), "generate-timeout"); err != nil {
				app.logger.LogAttrs(r.Context(), slog.LevelError, "failed to capture timeout trace",
					errors.SlogError(err))
			}
		})
	}
}
