package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"telos/internal/models"
	"telos/internal/testutil"
	"telos/internal/usecases"
)

func newTestService(t *testing.T) (*Service, *testutil.Users) {
	t.Helper()
	users := testutil.NewUsers()
	return NewService(users, users, users, time.Hour, zap.NewNop()), users
}

func TestSignUpCreatesProfileAndSession(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, " Ada@Example.com ", "secret1", "Ada Lovelace")
	require.NoError(t, err)

	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, "Ada Lovelace", res.Profile.FullName)
	assert.Equal(t, 1, users.SessionCount())

	userID, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)
}

func TestSignUpValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		fullName string
		field    string
	}{
		{"missing email", "", "secret1", "Ada", "email"},
		{"bad email", "not-an-email", "secret1", "Ada", "email"},
		{"short password", "ada@example.com", "12345", "Ada", "password"},
		{"missing name", "ada@example.com", "secret1", " ", "full_name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignUp(ctx, tc.email, tc.password, tc.fullName)
			var verr *usecases.ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "ADA@example.com", "secret2", "Ada Again")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignIn(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	res, err := svc.SignIn(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.Profile.FullName)

	_, err = svc.SignIn(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignOut(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, res.Token))
	require.NoError(t, svc.SignOut(ctx, res.Token))

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthenticateExpired(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, users.SessionCount())
}

func TestAuthenticateUnknownToken(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Authenticate(context.Background(), "made-up")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSignInWithGoogleCreatesThenReuses(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	id := GoogleIdentity{Subject: "g-1", Email: "grace@example.com", Name: "Grace", Picture: "https://img/g.png"}

	first, err := svc.SignInWithGoogle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Grace", first.Profile.FullName)
	assert.Equal(t, "https://img/g.png", first.Profile.AvatarURL)

	second, err := svc.SignInWithGoogle(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestSignInWithGoogleLinksExistingEmail(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	signup, err := svc.SignUp(ctx, "grace@example.com", "secret1", "Grace H")
	require.NoError(t, err)

	res, err := svc.SignInWithGoogle(ctx, GoogleIdentity{Subject: "g-2", Email: "grace@example.com", Name: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, res.User.ID)
	assert.Equal(t, "Grace H", res.Profile.FullName)

	stored, err := users.GetUserByGoogleSubject(ctx, "g-2")
	require.NoError(t, err)
	assert.Equal(t, signup.User.ID, stored.ID)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.SignUp(ctx, "ada@example.com", "secret1", "Ada")
	require.NoError(t, err)

	p, err := svc.UpdateProfile(ctx, res.User.ID, " Countess Ada ", "")
	require.NoError(t, err)
	assert.Equal(t, "Countess Ada", p.FullName)

	user, profile, err := svc.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Countess Ada", profile.FullName)
}

func TestDisplayName(t *testing.T) {
	user := models.User{Email: "ada@example.com"}

	assert.Equal(t, "Ada", DisplayName(user, models.UserProfile{FullName: "Ada"}))
	assert.Equal(t, "ada", DisplayName(user, models.UserProfile{}))
	assert.Equal(t, "User", DisplayName(models.User{}, models.UserProfile{}))
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)

	ok, err := CheckPassword(hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = CheckPassword(hash, "secret2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = CheckPassword("", "secret1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokens(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, HashToken(a), 64)
	assert.Equal(t, HashToken(a), HashToken(a))
}
