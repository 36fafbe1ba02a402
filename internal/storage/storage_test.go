package storage

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telos/internal/models"
)

// testPool connects to TELOS_TEST_POSTGRES_DSN and applies the schema. Tests
// are skipped when it is unset.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TELOS_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TELOS_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, pool.Ping(ctx))
	require.NoError(t, Migrate(ctx, pool))
	return pool
}

func createUser(t *testing.T, pool *pgxpool.Pool) models.User {
	t.Helper()

	u := models.User{Email: uuid.NewString() + "@Example.com", PasswordHash: "x"}
	require.NoError(t, NewUserStorage(pool).CreateUser(context.Background(), &u))
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, u.ID)
	})
	return u
}

func TestMigrateIsRepeatable(t *testing.T) {
	pool := testPool(t)
	require.NoError(t, Migrate(context.Background(), pool))
}

func TestUserStorage(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	users := NewUserStorage(pool)

	u := createUser(t, pool)
	assert.Equal(t, strings.ToLower(u.Email), u.Email)

	got, err := users.GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Empty(t, got.GoogleSubject)

	dup := models.User{Email: u.Email}
	assert.ErrorIs(t, users.CreateUser(ctx, &dup), ErrDuplicate)

	subject := "google-" + uuid.NewString()
	require.NoError(t, users.LinkGoogleSubject(ctx, u.ID, subject))
	got, err = users.GetUserByGoogleSubject(ctx, subject)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.GetUserByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStorage(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	sessions := NewSessionStorage(pool)
	u := createUser(t, pool)

	live := models.Session{TokenHash: uuid.NewString(), UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	stale := models.Session{TokenHash: uuid.NewString(), UserID: u.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, sessions.CreateSession(ctx, &live))
	require.NoError(t, sessions.CreateSession(ctx, &stale))

	got, err := sessions.GetSession(ctx, live.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.UserID)

	n, err := sessions.DeleteExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	_, err = sessions.GetSession(ctx, stale.TokenHash)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, sessions.DeleteSession(ctx, live.TokenHash))
	require.NoError(t, sessions.DeleteSession(ctx, live.TokenHash))
}

func TestProfileStorage(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	profiles := NewProfileStorage(pool)
	u := createUser(t, pool)

	p, err := profiles.CreateProfile(ctx, models.UserProfile{UserID: u.ID, FullName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FullName)

	// A second create keeps the stored row.
	p, err = profiles.CreateProfile(ctx, models.UserProfile{UserID: u.ID, FullName: "Other"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.FullName)

	p.FullName = "Ada King"
	updated, err := profiles.UpdateProfile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", updated.FullName)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
}

func TestProblemStorageCRUD(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	problems := NewProblemStorage(pool)
	owner := createUser(t, pool)
	stranger := createUser(t, pool)

	first := models.Problem{UserID: owner.ID, Priority: models.PriorityHigh, Description: "first", Status: models.StatusActive}
	second := models.Problem{UserID: owner.ID, Priority: models.PriorityLow, Description: "second", Status: models.StatusPending}
	require.NoError(t, problems.Create(ctx, &first))
	time.Sleep(time.Millisecond)
	require.NoError(t, problems.Create(ctx, &second))

	list, err := problems.List(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Description)

	list, err = problems.List(ctx, stranger.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = problems.Get(ctx, stranger.ID, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	first.Status = models.StatusResolved
	require.NoError(t, problems.Update(ctx, &first))
	assert.Equal(t, models.StatusResolved, first.Status)
	assert.True(t, first.UpdatedAt.After(first.CreatedAt) || first.UpdatedAt.Equal(first.CreatedAt))

	foreign := first
	foreign.UserID = stranger.ID
	assert.ErrorIs(t, problems.Update(ctx, &foreign), ErrNotFound)

	assert.ErrorIs(t, problems.Delete(ctx, stranger.ID, first.ID), ErrNotFound)
	require.NoError(t, problems.Delete(ctx, owner.ID, first.ID))
	assert.ErrorIs(t, problems.Delete(ctx, owner.ID, first.ID), ErrNotFound)
}

func TestGoalMissionChallengeStorage(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	owner := createUser(t, pool)

	goals := NewGoalStorage(pool)
	g := models.Goal{UserID: owner.ID, Priority: models.PriorityMedium, Description: "ship", Status: models.StatusPending, Progress: 40}
	require.NoError(t, goals.Create(ctx, &g))
	g.Progress = 80
	require.NoError(t, goals.Update(ctx, &g))
	got, err := goals.Get(ctx, owner.ID, g.ID)
	require.NoError(t, err)
	assert.Equal(t, 80, got.Progress)

	missions := NewMissionStorage(pool)
	m := models.Mission{UserID: owner.ID, Statement: "purpose", Category: "Core Mission"}
	require.NoError(t, missions.Create(ctx, &m))
	ms, err := missions.List(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, ms, 1)

	challenges := NewChallengeStorage(pool)
	c := models.Challenge{UserID: owner.ID, Description: "hiring", Impact: models.PriorityHigh, Status: models.StatusActive, Category: "Operational"}
	require.NoError(t, challenges.Create(ctx, &c))
	require.NoError(t, challenges.Delete(ctx, owner.ID, c.ID))
	_, err = challenges.Get(ctx, owner.ID, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestActivityStorage(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	activity := NewActivityStorage(pool)
	owner := createUser(t, pool)

	for _, action := range []string{models.ActionCreated, models.ActionUpdated, models.ActionDeleted} {
		require.NoError(t, activity.Append(ctx, &models.ActivityLogEntry{
			UserID:     owner.ID,
			EntityType: models.EntityGoal,
			EntityID:   uuid.New(),
			Action:     action,
			Summary:    "Goal: ship",
		}))
		time.Sleep(time.Millisecond)
	}

	recent, err := activity.ListRecent(ctx, owner.ID, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, models.ActionDeleted, recent[0].Action)
}
