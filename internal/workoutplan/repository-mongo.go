package workoutplan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Faraz-Ibrar/AI-Powered-Workout-Generation-System/internal/planner"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfilesCollection is the collection holding the profile documents.
const ProfilesCollection = "userprofiles"

// MongoRepository stores profiles in a MongoDB collection keyed by object id.
type MongoRepository struct {
	client     *mongo.Client
	collection *mongo.Collection
	logger     *slog.Logger
}

// NewMongoRepository connects to uri and uses the profiles collection of the named database.
func NewMongoRepository(ctx context.Context, uri, database string, logger *slog.Logger) (*MongoRepository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	logger.LogAttrs(ctx, slog.LevelDebug, "connected to mongodb",
		slog.String("database", database), slog.String("collection", ProfilesCollection))
	return &MongoRepository{
		client:     client,
		collection: client.Database(database).Collection(ProfilesCollection),
		logger:     logger,
	}, nil
}

// Close disconnects the client.
func (r *MongoRepository) Close(ctx context.Context) error {
	if err := r.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect from mongodb: %w", err)
	}
	return nil
}

// mongoProfile is the BSON shape of a profile. Documents written by other clients may carry extra fields such as
// a version key; they are ignored on decode.
type mongoProfile struct {
	ID              primitive.ObjectID    `bson:"_id"`
	FitnessLevel    *string               `bson:"fitnessLevel,omitempty"`
	Goal            *string               `bson:"goal,omitempty"`
	AvailableDays   *int                  `bson:"availableDays,omitempty"`
	CalorieGoal     *float64              `bson:"calorieGoal,omitempty"`
	Equipment       []string              `bson:"equipment"`
	SessionDuration *float64              `bson:"sessionDuration,omitempty"`
	WorkoutPlan     *planner.PlanDocument `bson:"workoutPlan,omitempty"`
}

func toMongoProfile(doc ProfileDocument) (mongoProfile, error) {
	id, err := objectID(doc.ID)
	if err != nil {
		return mongoProfile{}, err
	}
	equipment := doc.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return mongoProfile{
		ID:              id,
		FitnessLevel:    doc.FitnessLevel,
		Goal:            doc.Goal,
		AvailableDays:   doc.AvailableDays,
		CalorieGoal:     doc.CalorieGoal,
		Equipment:       equipment,
		SessionDuration: doc.SessionDuration,
		WorkoutPlan:     doc.WorkoutPlan,
	}, nil
}

func (p mongoProfile) document() ProfileDocument {
	equipment := p.Equipment
	if equipment == nil {
		equipment = []string{}
	}
	return ProfileDocument{
		ID:              p.ID.Hex(),
		FitnessLevel:    p.FitnessLevel,
		Goal:            p.Goal,
		AvailableDays:   p.AvailableDays,
		CalorieGoal:     p.CalorieGoal,
		Equipment:       equipment,
		SessionDuration: p.SessionDuration,
		WorkoutPlan:     p.WorkoutPlan,
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	if err := ValidateUserID(id); err != nil {
		return primitive.NilObjectID, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("parse object id: %w", err)
	}
	return oid, nil
}

// Get returns the profile with the given id or ErrNotFound.
func (r *MongoRepository) Get(ctx context.Context, id string) (ProfileDocument, error) {
	oid, err := objectID(id)
	if err != nil {
		return ProfileDocument{}, err
	}
	var profile mongoProfile
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ProfileDocument{}, ErrNotFound
	}
	if err != nil {
		return ProfileDocument{}, fmt.Errorf("find profile %s: %w", id, err)
	}
	return profile.document(), nil
}

// List returns every profile ordered by object id, which follows creation time.
func (r *MongoRepository) List(ctx context.Context) ([]ProfileDocument, error) {
	cursor, err := r.collection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	var profiles []mongoProfile
	if err = cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	docs := make([]ProfileDocument, 0, len(profiles))
	for _, p := range profiles {
		docs = append(docs, p.document())
	}
	return docs, nil
}

// Create stores doc under doc.ID.
func (r *MongoRepository) Create(ctx context.Context, doc ProfileDocument) error {
	profile, err := toMongoProfile(doc)
	if err != nil {
		return err
	}
	if _, err = r.collection.InsertOne(ctx, profile); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// SavePlan sets the workoutPlan field of the profile.
func (r *MongoRepository) SavePlan(ctx context.Context, id string, plan planner.PlanDocument) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, setPlanUpdate(plan))
	if err != nil {
		return fmt.Errorf("update workout plan: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "saved workout plan", slog.String("user_id", id))
	return nil
}

func setPlanUpdate(plan planner.PlanDocument) bson.M {
	return bson.M{"$set": bson.M{"workoutPlan": plan}}
}
