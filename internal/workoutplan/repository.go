package workoutplan

import (
	"context"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/planner"
)

// Repository stores profile documents and their generated plans.
type Repository interface {
	// Get returns the profile with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (ProfileDocument, error)
	// List returns every profile in creation order.
	List(ctx context.Context) ([]ProfileDocument, error)
	// Create stores doc under doc.ID.
	Create(ctx context.Context, doc ProfileDocument) error
	// SavePlan replaces the stored plan of the profile. It returns ErrNotFound when the profile does not exist.
	SavePlan(ctx context.Context, id string, plan planner.PlanDocument) error
}
