package workoutplan

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/planner"
	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/sqlite"
)

// SQLiteRepository stores profiles in the user_profiles table. Equipment and plans are JSON columns.
type SQLiteRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

// NewSQLiteRepository creates a new SQLite-backed profile repository.
func NewSQLiteRepository(db *sqlite.Database, logger *slog.Logger) *SQLiteRepository {
	return &SQLiteRepository{
		db:     db,
		logger: logger,
	}
}

const selectProfile = `
	SELECT id, fitness_level, goal, available_days, calorie_goal, session_duration, equipment, workout_plan
	FROM user_profiles`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (ProfileDocument, error) {
	var (
		doc             ProfileDocument
		fitnessLevel    sql.NullString
		goal            sql.NullString
		availableDays   sql.NullInt64
		calorieGoal     sql.NullFloat64
		sessionDuration sql.NullFloat64
		equipment       string
		workoutPlan     sql.NullString
	)
	if err := row.Scan(&doc.ID, &fitnessLevel, &goal, &availableDays, &calorieGoal, &sessionDuration, &equipment,
		&workoutPlan); err != nil {
		return ProfileDocument{}, fmt.Errorf("scan row: %w", err)
	}

	if fitnessLevel.Valid {
		doc.FitnessLevel = &fitnessLevel.String
	}
	if goal.Valid {
		doc.Goal = &goal.String
	}
	if availableDays.Valid {
		days := int(availableDays.Int64)
		doc.AvailableDays = &days
	}
	if calorieGoal.Valid {
		doc.CalorieGoal = &calorieGoal.Float64
	}
	if sessionDuration.Valid {
		doc.SessionDuration = &sessionDuration.Float64
	}
	if err := json.Unmarshal([]byte(equipment), &doc.Equipment); err != nil {
		return ProfileDocument{}, fmt.Errorf("unmarshal equipment of %s: %w", doc.ID, err)
	}
	if doc.Equipment == nil {
		doc.Equipment = []string{}
	}
	if workoutPlan.Valid {
		var plan planner.PlanDocument
		if err := json.Unmarshal([]byte(workoutPlan.String), &plan); err != nil {
			return ProfileDocument{}, fmt.Errorf("unmarshal workout plan of %s: %w", doc.ID, err)
		}
		doc.WorkoutPlan = &plan
	}
	return doc, nil
}

// Get returns the profile with the given id or ErrNotFound.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (ProfileDocument, error) {
	doc, err := scanProfile(r.db.ReadOnly.QueryRowContext(ctx, selectProfile+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return ProfileDocument{}, ErrNotFound
	}
	if err != nil {
		return ProfileDocument{}, fmt.Errorf("get profile %s: %w", id, err)
	}
	return doc, nil
}

// List returns every profile in creation order.
func (r *SQLiteRepository) List(ctx context.Context) (_ []ProfileDocument, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, selectProfile+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query profiles: %w", err)
	}
	defer func() {
		err = errors.Join(err, rows.Close())
	}()

	docs := []ProfileDocument{}
	for rows.Next() {
		var doc ProfileDocument
		if doc, err = scanProfile(rows); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return docs, nil
}

// Create stores doc under doc.ID.
func (r *SQLiteRepository) Create(ctx context.Context, doc ProfileDocument) error {
	equipment := doc.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	equipmentJSON, err := json.Marshal(equipment)
	if err != nil {
		return fmt.Errorf("marshal equipment: %w", err)
	}
	var planJSON *string
	if doc.WorkoutPlan != nil {
		var data []byte
		if data, err = json.Marshal(doc.WorkoutPlan); err != nil {
			return fmt.Errorf("marshal workout plan: %w", err)
		}
		plan := string(data)
		planJSON = &plan
	}

	_, err = r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO user_profiles (
			id, fitness_level, goal, available_days, calorie_goal, session_duration, equipment, workout_plan
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID,
		doc.FitnessLevel,
		doc.Goal,
		doc.AvailableDays,
		doc.CalorieGoal,
		doc.SessionDuration,
		string(equipmentJSON),
		planJSON,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// SavePlan replaces the stored plan of the profile.
func (r *SQLiteRepository) SavePlan(ctx context.Context, id string, plan planner.PlanDocument) error {
	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal workout plan: %w", err)
	}
	res, err := r.db.ReadWrite.ExecContext(ctx, `UPDATE user_profiles SET workout_plan = ? WHERE id = ?`,
		string(data), id)
	if err != nil {
		return fmt.Errorf("update workout plan: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "saved workout plan", slog.String("user_id", id))
	return nil
}
