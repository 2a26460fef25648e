package workoutplan_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/planner"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/ptr"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/sqlite"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/testhelpers"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/workoutplan"
	"github.com/google/go-cmp/cmp"
)

const unknownUserID = "0123456789abcdef01234567"

type fixture struct {
	svc    *workoutplan.Service
	repo   *workoutplan.SQLiteRepository
	logger *slog.Logger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))
	db, err := sqlite.NewDatabase(t.Context(), ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase: %v", err)
	}
	t.Cleanup(func() {
		if err = db.Close(); err != nil {
			t.Errorf("close database: %v", err)
		}
	})
	repo := workoutplan.NewSQLiteRepository(db, logger)
	return fixture{svc: workoutplan.NewService(repo, logger), repo: repo, logger: logger}
}

func newEngine(t *testing.T, logger *slog.Logger) *planner.Engine {
	t.Helper()
	cfg := planner.Config{
		PopulationSize:      10,
		Generations:         5,
		MutationRate:        0.3,
		TournamentSize:      3,
		HillClimbIterations: 20,
	}
	engine, err := planner.New(cfg, planner.DefaultCatalog(), planner.NewRand(42), logger)
	if err != nil {
		t.Fatalf("planner.New: %v", err)
	}
	return engine
}

func newProfile() workoutplan.ProfileDocument {
	return workoutplan.ProfileDocument{
		ID:              "",
		FitnessLevel:    ptr.Ref("beginner"),
		Goal:            ptr.Ref("strength"),
		AvailableDays:   ptr.Ref(3),
		CalorieGoal:     ptr.Ref(2000.0),
		Equipment:       []string{"dumbbells"},
		SessionDuration: nil,
		WorkoutPlan:     nil,
	}
}

func TestService_CreateAndListProfiles(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	created, err := f.svc.CreateProfile(ctx, newProfile())
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if err = workoutplan.ValidateUserID(created.ID); err != nil {
		t.Errorf("created profile has invalid id %q: %v", created.ID, err)
	}

	got, err := f.svc.GetProfile(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("GetProfile() mismatch (-want +got):\n%s", diff)
	}

	list, err := f.svc.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if diff := cmp.Diff([]workoutplan.ProfileDocument{created}, list); diff != "" {
		t.Errorf("ListProfiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestService_CreateProfile_Invalid(t *testing.T) {
	f := newFixture(t)
	doc := newProfile()
	doc.CalorieGoal = nil
	if _, err := f.svc.CreateProfile(t.Context(), doc); !errors.Is(err, workoutplan.ErrInvalidProfile) {
		t.Fatalf("CreateProfile() error = %v, want ErrInvalidProfile", err)
	}
	list, err := f.svc.ListProfiles(t.Context())
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("invalid profile was stored: %v", list)
	}
}

func TestService_GetProfile_Errors(t *testing.T) {
	f := newFixture(t)
	if _, err := f.svc.GetProfile(t.Context(), "short"); !errors.Is(err, workoutplan.ErrInvalidUserID) {
		t.Errorf("GetProfile(short) error = %v, want ErrInvalidUserID", err)
	}
	if _, err := f.svc.GetProfile(t.Context(), unknownUserID); !errors.Is(err, workoutplan.ErrNotFound) {
		t.Errorf("GetProfile(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestService_GeneratePlan(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	created, err := f.svc.CreateProfile(ctx, newProfile())
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	res := f.svc.GeneratePlan(ctx, newEngine(t, f.logger), created.ID)
	if res.Status != workoutplan.StatusSuccess || res.Err() != nil || res.Error != nil {
		t.Fatalf("GeneratePlan() = %+v, err %v", res, res.Err())
	}
	if got := len(res.Data.WeeklyPlan); got != 3 {
		t.Errorf("plan has %d days, want 3", got)
	}

	stored, err := f.repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(res.Data, stored.WorkoutPlan); diff != "" {
		t.Errorf("stored plan differs from the result (-want +got):\n%s", diff)
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	var envelope map[string]json.RawMessage
	if err = json.Unmarshal(data, &envelope); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if diff := cmp.Diff("null", string(envelope["error"])); diff != "" {
		t.Errorf("error field mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(`"success"`, string(envelope["status"])); diff != "" {
		t.Errorf("status field mismatch (-want +got):\n%s", diff)
	}
}

func TestService_GeneratePlan_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	insert := func(id string, modify func(*workoutplan.ProfileDocument)) {
		doc := newProfile()
		doc.ID = id
		modify(&doc)
		if err := f.repo.Create(ctx, doc); err != nil {
			t.Fatalf("Create(%s): %v", id, err)
		}
	}
	insert("aaaaaaaaaaaaaaaaaaaaaaa1", func(d *workoutplan.ProfileDocument) { d.Goal = nil })
	insert("aaaaaaaaaaaaaaaaaaaaaaa2", func(d *workoutplan.ProfileDocument) { d.Goal = ptr.Ref("flexibility") })
	insert("aaaaaaaaaaaaaaaaaaaaaaa3", func(d *workoutplan.ProfileDocument) { d.AvailableDays = ptr.Ref(0) })

	tests := []struct {
		name        string
		userID      string
		wantMessage string
		wantErr     error
	}{
		{
			name:        "short id",
			userID:      "abc",
			wantMessage: "Invalid user ID format: must be 24 characters long.",
			wantErr:     workoutplan.ErrInvalidUserID,
		},
		{
			name:        "non-hex id",
			userID:      "zzzzzzzzzzzzzzzzzzzzzzzz",
			wantMessage: "Invalid user ID format: encoding/hex: invalid byte",
			wantErr:     workoutplan.ErrInvalidUserID,
		},
		{
			name:        "unknown user",
			userID:      unknownUserID,
			wantMessage: "User not found",
			wantErr:     workoutplan.ErrNotFound,
		},
		{
			name:        "missing goal",
			userID:      "aaaaaaaaaaaaaaaaaaaaaaa1",
			wantMessage: "Missing field in user profile: 'goal'",
			wantErr:     workoutplan.ErrInvalidProfile,
		},
		{
			name:        "unknown goal",
			userID:      "aaaaaaaaaaaaaaaaaaaaaaa2",
			wantMessage: "Error processing user profile: ",
			wantErr:     workoutplan.ErrInvalidProfile,
		},
		{
			name:        "zero days",
			userID:      "aaaaaaaaaaaaaaaaaaaaaaa3",
			wantMessage: "Error processing user profile: ",
			wantErr:     workoutplan.ErrInvalidProfile,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.svc.GeneratePlan(ctx, newEngine(t, f.logger), tt.userID)
			if res.Status != workoutplan.StatusError || res.Data != nil || res.Error == nil {
				t.Fatalf("GeneratePlan() = %+v, want an error result", res)
			}
			if !strings.HasPrefix(*res.Error, tt.wantMessage) {
				t.Errorf("message = %q, want prefix %q", *res.Error, tt.wantMessage)
			}
			if !errors.Is(res.Err(), tt.wantErr) {
				t.Errorf("Err() = %v, want %v", res.Err(), tt.wantErr)
			}
		})
	}
}

type failingSaveRepository struct {
	*workoutplan.SQLiteRepository
}

func (failingSaveRepository) SavePlan(context.Context, string, planner.PlanDocument) error {
	return errors.New("disk full")
}

func TestService_GeneratePlan_WriteBackFailure(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	created, err := f.svc.CreateProfile(ctx, newProfile())
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	svc := workoutplan.NewService(failingSaveRepository{f.repo}, f.logger)
	res := svc.GeneratePlan(ctx, newEngine(t, f.logger), created.ID)
	if res.Status != workoutplan.StatusError || res.Data != nil {
		t.Fatalf("GeneratePlan() = %+v, want an error result", res)
	}
	if diff := cmp.Diff("Unexpected error: disk full", *res.Error); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}
}

type failingGenerator struct {
	err error
}

func (g failingGenerator) Generate(context.Context, planner.UserProfile) (*planner.Plan, error) {
	return nil, g.err
}

func TestService_GeneratePlan_GeneratorFailure(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()
	created, err := f.svc.CreateProfile(ctx, newProfile())
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	res := f.svc.GeneratePlan(ctx, failingGenerator{err: errors.New("boom")}, created.ID)
	if res.Status != workoutplan.StatusError {
		t.Fatalf("GeneratePlan() = %+v, want an error result", res)
	}
	if diff := cmp.Diff("Unexpected error: boom", *res.Error); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}

	stored, err := f.repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.WorkoutPlan != nil {
		t.Errorf("a failed generation stored a plan")
	}
}

// cancellingGenerator cancels the request while the engine is running.
type cancellingGenerator struct {
	engine *planner.Engine
	cancel context.CancelFunc
}

func (g cancellingGenerator) Generate(ctx context.Context, profile planner.UserProfile) (*planner.Plan, error) {
	g.cancel()
	return g.engine.Generate(ctx, profile)
}

func TestService_GeneratePlan_Cancelled(t *testing.T) {
	f := newFixture(t)
	created, err := f.svc.CreateProfile(t.Context(), newProfile())
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	res := f.svc.GeneratePlan(ctx, cancellingGenerator{engine: newEngine(t, f.logger), cancel: cancel}, created.ID)
	if !errors.Is(res.Err(), context.Canceled) {
		t.Fatalf("GeneratePlan() err = %v, want context.Canceled", res.Err())
	}
	if diff := cmp.Diff("Unexpected error: generate plan: context canceled", *res.Error); diff != "" {
		t.Errorf("message mismatch (-want +got):\n%s", diff)
	}

	stored, err := f.repo.Get(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if stored.WorkoutPlan != nil {
		t.Errorf("a cancelled generation stored a plan")
	}
}
