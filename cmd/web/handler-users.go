package main

import (
	"log/slog"
	"net/http"
	"runtime/trace"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/errors"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/workoutplan"
)

func (app *application) createUserPOST(w http.ResponseWriter, r *http.Request) {
	var doc workoutplan.ProfileDocument
	if err := app.decodeJSON(w, r, &doc); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "invalid profile body", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusBadRequest, map[string]string{"message": "Invalid input data"})
		return
	}

	created, err := app.plans.CreateProfile(r.Context(), doc)
	if errors.Is(err, workoutplan.ErrInvalidProfile) {
		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "rejected profile", errors.SlogError(err))
		app.writeJSON(w, r, http.StatusBadRequest, map[string]string{"message": "Invalid input data"})
		return
	}
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusCreated, created)
}

func (app *application) listUsersGET(w http.ResponseWriter, r *http.Request) {
	docs, err := app.plans.ListProfiles(r.Context())
	if err != nil {
		app.serverError(w, r, err)
		return
	}
	app.writeJSON(w, r, http.StatusOK, docs)
}

type generateWorkoutRequest struct {
	// UserID is untyped so that non-string ids are rejected like short ones.
	UserID any `json:"userId"`
}

type generateWorkoutResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	WorkoutPlan any    `json:"workoutPlan"`
}

func (app *application) generateWorkoutPOST(w http.ResponseWriter, r *http.Request) {
	var req generateWorkoutRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.logger.LogAttrs(r.Context(), slog.LevelDebug, "invalid generate body", errors.SlogError(err))
	}
	userID, ok := req.UserID.(string)
	if !ok || len(userID) != workoutplan.UserIDLength {
		app.writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "User ID must be a 24-character string"})
		return
	}

	engine, err := app.engines.Engine(app.streams.Add(1))
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	var res workoutplan.Result
	trace.WithRegion(r.Context(), "generate plan", func() {
		res = app.plans.GeneratePlan(r.Context(), engine, userID)
	})
	if res.Status != workoutplan.StatusSuccess {
		status := http.StatusInternalServerError
		switch err = res.Err(); {
		case errors.Is(err, workoutplan.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, workoutplan.ErrInvalidUserID), errors.Is(err, workoutplan.ErrInvalidProfile):
			status = http.StatusBadRequest
		}
		app.writeJSON(w, r, status, map[string]string{"error": *res.Error})
		return
	}

	app.writeJSON(w, r, http.StatusOK, generateWorkoutResponse{
		Success:     true,
		Message:     "Workout plan generated successfully",
		WorkoutPlan: res.Data,
	})
}
