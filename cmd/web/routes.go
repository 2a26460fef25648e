package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(app.logAndTraceRequest, app.recoverPanic, secureHeaders)
	r.NotFound(app.notFound)

	r.Get("/api/healthy", app.healthy)

	r.Route("/api/users", func(r chi.Router) {
		r.Use(noCache)
		r.Post("/", app.createUserPOST)
		r.Get("/", app.listUsersGET)
		r.With(app.timeout(generateTimeout)).Post("/generate-workout", app.generateWorkoutPOST)
	})

	r.Get("/users/{id}/plan", app.planGET)

	return r
}
