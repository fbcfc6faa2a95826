//go:build integration

package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	mongodbcontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"

	"example.com/exerciselog/internal/domain"
)

func TestRepositoriesRoundTrip(t *testing.T) {
	ctx := context.Background()

	container, err := mongodbcontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := Connect(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	db := client.Database("exercise_log_test")
	users := NewUserRepository(db)
	exercises := NewExerciseRepository(db)

	user, err := users.Insert(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	stored, err := users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, "alice", stored.Username)

	// Malformed and absent ids both resolve to no match, never an error.
	missing, err := users.FindByID(ctx, "not-a-hex-id")
	require.NoError(t, err)
	require.Nil(t, missing)

	missing, err = users.FindByID(ctx, "ffffffffffffffffffffffff")
	require.NoError(t, err)
	require.Nil(t, missing)

	listed, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	dates := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, date := range dates {
		_, err := exercises.Insert(ctx, domain.Exercise{
			UserID:      user.ID,
			Description: "run",
			Duration:    30,
			Date:        date,
		})
		require.NoError(t, err)
	}

	from := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	filtered, err := exercises.ListByUser(ctx, user.ID, domain.LogFilter{From: &from, Limit: domain.DefaultLogLimit})
	require.NoError(t, err)
	require.Len(t, filtered, 2)

	to := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	filtered, err = exercises.ListByUser(ctx, user.ID, domain.LogFilter{To: &to, Limit: domain.DefaultLogLimit})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, dates[0], filtered[0].Date.UTC())

	capped, err := exercises.ListByUser(ctx, user.ID, domain.LogFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, capped, 2)

	// Orphaned records are permitted: the reference is not validated.
	orphan, err := exercises.Insert(ctx, domain.Exercise{
		UserID: "ffffffffffffffffffffffff",
		Date:   dates[0],
	})
	require.NoError(t, err)
	require.NotEmpty(t, orphan.ID)
}
