// Package domain defines the business logic for the exercise log service.
package domain

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserNotFound is returned when a user id does not resolve to a stored user.
	ErrUserNotFound = errors.New("user not found")
	// ErrNoUsers indicates the user collection is empty. An empty store is
	// surfaced as an error rather than an empty list.
	ErrNoUsers = errors.New("no users found")
)

// UserRepository captures persistence operations for users.
type UserRepository interface {
	Insert(ctx context.Context, username string) (*User, error)
	// FindByID returns (nil, nil) when no user matches. Malformed ids are
	// treated as no match, not as an error.
	FindByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]User, error)
}

// ExerciseRepository captures persistence operations for exercise records.
type ExerciseRepository interface {
	Insert(ctx context.Context, exercise Exercise) (*Exercise, error)
	ListByUser(ctx context.Context, userID string, filter LogFilter) ([]Exercise, error)
}

// Service orchestrates user and exercise workflows.
type Service struct {
	users     UserRepository
	exercises ExerciseRepository
	now       func() time.Time
}

// NewService constructs a Service.
func NewService(users UserRepository, exercises ExerciseRepository) *Service {
	return &Service{users: users, exercises: exercises, now: time.Now}
}

// CreateUser persists a new user. Any username is accepted, including the
// empty string.
func (s *Service) CreateUser(ctx context.Context, username string) (*User, error) {
	return s.users.Insert(ctx, username)
}

// ListUsers returns every stored user projected to id and username, or
// ErrNoUsers when the collection is empty.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}
	return users, nil
}

// ExerciseInput captures the payload from the API layer. A nil Date means
// "use the current date".
type ExerciseInput struct {
	Description string
	Duration    int
	Date        *time.Time
}

// AddExercise resolves the owning user, then persists a new exercise record
// for it. The stored date is never zero: absent dates default at write time.
func (s *Service) AddExercise(ctx context.Context, userID string, input ExerciseInput) (*User, *Exercise, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	date := s.now().UTC()
	if input.Date != nil {
		date = input.Date.UTC()
	}

	exercise, err := s.exercises.Insert(ctx, Exercise{
		UserID:      user.ID,
		Description: input.Description,
		Duration:    input.Duration,
		Date:        date,
	})
	if err != nil {
		return nil, nil, err
	}
	return user, exercise, nil
}

// UserLog resolves the user, then returns its exercise records restricted by
// the filter. The cap is a hard truncation in natural storage order.
func (s *Service) UserLog(ctx context.Context, userID string, filter LogFilter) (*User, []Exercise, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	if filter.Limit <= 0 {
		filter.Limit = DefaultLogLimit
	}

	log, err := s.exercises.ListByUser(ctx, user.ID, filter)
	if err != nil {
		return nil, nil, err
	}
	return user, log, nil
}
