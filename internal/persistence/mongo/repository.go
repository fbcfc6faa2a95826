// Package mongo provides MongoDB-backed persistence for users and exercises.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/exerciselog/internal/domain"
	"example.com/exerciselog/internal/observability"
)

type userDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Username string             `bson:"username"`
}

type exerciseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Description string             `bson:"description,omitempty"`
	Duration    int                `bson:"duration,omitempty"`
	Date        time.Time          `bson:"date"`
}

// UserRepository persists users in the "users" collection. The database
// handle is constructed at startup and passed in; there is no package-level
// connection state.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository constructs a UserRepository over the given database.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

// Insert stores a new user and returns it with the generated id.
func (r *UserRepository) Insert(ctx context.Context, username string) (*domain.User, error) {
	res, err := r.col.InsertOne(ctx, userDoc{Username: username})
	if err != nil {
		return nil, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}

	observability.RecordUserCreated()
	return &domain.User{ID: id.Hex(), Username: username}, nil
}

// FindByID looks a user up by its hex id. A malformed id and an absent
// document both yield (nil, nil).
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc userDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &domain.User{ID: doc.ID.Hex(), Username: doc.Username}, nil
}

// List returns every stored user, projected to id and username.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	projection := options.Find().SetProjection(bson.D{
		{Key: "_id", Value: 1},
		{Key: "username", Value: 1},
	})

	cur, err := r.col.Find(ctx, bson.M{}, projection)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, domain.User{ID: doc.ID.Hex(), Username: doc.Username})
	}
	return users, nil
}

// ExerciseRepository persists exercise records in the "exercises" collection.
type ExerciseRepository struct {
	col *mongo.Collection
}

// NewExerciseRepository constructs an ExerciseRepository over the given database.
func NewExerciseRepository(db *mongo.Database) *ExerciseRepository {
	return &ExerciseRepository{col: db.Collection("exercises")}
}

// Insert stores a record tied to the given user id. The reference is not
// validated against the users collection.
func (r *ExerciseRepository) Insert(ctx context.Context, exercise domain.Exercise) (*domain.Exercise, error) {
	doc := exerciseDoc{
		UserID:      exercise.UserID,
		Description: exercise.Description,
		Duration:    exercise.Duration,
		Date:        exercise.Date,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, errors.New("unexpected inserted id type")
	}

	stored := exercise
	stored.ID = id.Hex()
	observability.RecordExercisePersisted(stored.Date)
	return &stored, nil
}

// ListByUser returns records for exactly this user, inclusively bounded by
// the filter dates when present, capped at the filter limit, in natural
// collection order.
func (r *ExerciseRepository) ListByUser(ctx context.Context, userID string, filter domain.LogFilter) ([]domain.Exercise, error) {
	query := bson.M{"user_id": userID}

	dateCond := bson.M{}
	if filter.From != nil {
		dateCond["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateCond["$lte"] = *filter.To
	}
	if len(dateCond) > 0 {
		query["date"] = dateCond
	}

	opts := options.Find()
	if filter.Limit > 0 {
		opts.SetLimit(filter.Limit)
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []exerciseDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, doc := range docs {
		exercises = append(exercises, domain.Exercise{
			ID:          doc.ID.Hex(),
			UserID:      doc.UserID,
			Description: doc.Description,
			Duration:    doc.Duration,
			Date:        doc.Date,
		})
	}
	return exercises, nil
}
