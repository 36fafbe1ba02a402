package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"telos/internal/models"
	"telos/internal/storage"
	"telos/internal/usecases"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("not signed in")
	ErrEmailTaken         = errors.New("an account with this email already exists")
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByGoogleSubject(ctx context.Context, subject string) (models.User, error)
	LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error
}

type SessionStore interface {
	CreateSession(ctx context.Context, s *models.Session) error
	GetSession(ctx context.Context, tokenHash string) (models.Session, error)
	DeleteSession(ctx context.Context, tokenHash string) error
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (models.UserProfile, error)
	CreateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error)
	UpdateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error)
}

// Result is what a successful sign-in hands back to the client.
type Result struct {
	Token     string             `json:"token"`
	ExpiresAt time.Time          `json:"expires_at"`
	User      models.User        `json:"user"`
	Profile   models.UserProfile `json:"profile"`
}

type Service struct {
	users    UserStore
	sessions SessionStore
	profiles ProfileStore
	ttl      time.Duration
	log      *zap.Logger

	now func() time.Time
}

func NewService(users UserStore, sessions SessionStore, profiles ProfileStore, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		profiles: profiles,
		ttl:      ttl,
		log:      log,
		now:      time.Now,
	}
}

func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (Result, error) {
	op := "auth.SignUp"

	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if err := validateEmail(email); err != nil {
		return Result{}, err
	}
	if len(password) < MinPasswordLen {
		return Result{}, &usecases.ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("must be at least %d characters long", MinPasswordLen),
		}
	}
	if fullName == "" {
		return Result{}, &usecases.ValidationError{Field: "full_name", Message: "is required"}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{Email: email, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return Result{}, ErrEmailTaken
		}
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user signed up", zap.String("op", op), zap.String("user_id", user.ID.String()))
	return s.startSession(ctx, user, models.UserProfile{UserID: user.ID, FullName: fullName})
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Result, error) {
	op := "auth.SignIn"

	if strings.TrimSpace(email) == "" || password == "" {
		return Result{}, &usecases.ValidationError{Field: "email", Message: "email and password are required"}
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return Result{}, ErrInvalidCredentials
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	ok, err := CheckPassword(user.PasswordHash, password)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return Result{}, ErrInvalidCredentials
	}

	return s.startSession(ctx, user, models.UserProfile{UserID: user.ID})
}

// GoogleIdentity is the subset of Google userinfo used for sign-in.
type GoogleIdentity struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// SignInWithGoogle finds the user by Google subject, links an existing
// account with the same email, or creates a new one.
func (s *Service) SignInWithGoogle(ctx context.Context, id GoogleIdentity) (Result, error) {
	op := "auth.SignInWithGoogle"

	if id.Subject == "" || id.Email == "" {
		return Result{}, fmt.Errorf("%s: google identity is missing subject or email", op)
	}

	user, err := s.users.GetUserByGoogleSubject(ctx, id.Subject)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		user, err = s.users.GetUserByEmail(ctx, id.Email)
		switch {
		case err == nil:
			if err := s.users.LinkGoogleSubject(ctx, user.ID, id.Subject); err != nil {
				return Result{}, fmt.Errorf("%s: %w", op, err)
			}
			user.GoogleSubject = id.Subject
		case errors.Is(err, storage.ErrNotFound):
			user = models.User{Email: id.Email, GoogleSubject: id.Subject}
			if err := s.users.CreateUser(ctx, &user); err != nil {
				return Result{}, fmt.Errorf("%s: %w", op, err)
			}
			s.log.Info("user signed up with google", zap.String("op", op), zap.String("user_id", user.ID.String()))
		default:
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}
	default:
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return s.startSession(ctx, user, models.UserProfile{
		UserID:    user.ID,
		FullName:  id.Name,
		AvatarURL: id.Picture,
	})
}

func (s *Service) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.DeleteSession(ctx, HashToken(token))
}

// Authenticate resolves a bearer token to its user. Expired sessions are
// removed on sight.
func (s *Service) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	op := "auth.Authenticate"

	if token == "" {
		return uuid.Nil, ErrUnauthorized
	}

	hash := HashToken(token)
	sess, err := s.sessions.GetSession(ctx, hash)
	if errors.Is(err, storage.ErrNotFound) {
		return uuid.Nil, ErrUnauthorized
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if !s.now().Before(sess.ExpiresAt) {
		if err := s.sessions.DeleteSession(ctx, hash); err != nil {
			s.log.Warn("failed to delete expired session", zap.String("op", op), zap.Error(err))
		}
		return uuid.Nil, ErrUnauthorized
	}

	return sess.UserID, nil
}

// Me returns the account and its profile, creating the profile when absent.
func (s *Service) Me(ctx context.Context, userID uuid.UUID) (models.User, models.UserProfile, error) {
	op := "auth.Me"

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return models.User{}, models.UserProfile{}, fmt.Errorf("%s: %w", op, err)
	}

	profile, err := s.ensureProfile(ctx, models.UserProfile{UserID: userID})
	if err != nil {
		return models.User{}, models.UserProfile{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, profile, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, avatarURL string) (models.UserProfile, error) {
	op := "auth.UpdateProfile"

	current, err := s.ensureProfile(ctx, models.UserProfile{UserID: userID})
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%s: %w", op, err)
	}

	current.FullName = strings.TrimSpace(fullName)
	current.AvatarURL = strings.TrimSpace(avatarURL)

	updated, err := s.profiles.UpdateProfile(ctx, current)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

func (s *Service) startSession(ctx context.Context, user models.User, seed models.UserProfile) (Result, error) {
	op := "auth.startSession"

	profile, err := s.ensureProfile(ctx, seed)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	token, err := NewToken()
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	issued := s.now()
	sess := models.Session{
		TokenHash: HashToken(token),
		UserID:    user.ID,
		CreatedAt: issued,
		ExpiresAt: issued.Add(s.ttl),
	}
	if err := s.sessions.CreateSession(ctx, &sess); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return Result{
		Token:     token,
		ExpiresAt: sess.ExpiresAt,
		User:      user,
		Profile:   profile,
	}, nil
}

// ensureProfile fetches the stored profile, creating it from seed if missing.
func (s *Service) ensureProfile(ctx context.Context, seed models.UserProfile) (models.UserProfile, error) {
	profile, err := s.profiles.GetProfile(ctx, seed.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.UserProfile{}, err
	}
	return s.profiles.CreateProfile(ctx, seed)
}

// DisplayName picks the profile name, then the email local part.
func DisplayName(user models.User, profile models.UserProfile) string {
	if profile.FullName != "" {
		return profile.FullName
	}
	if local, _, ok := strings.Cut(user.Email, "@"); ok && local != "" {
		return local
	}
	return "User"
}

func validateEmail(email string) error {
	if email == "" {
		return &usecases.ValidationError{Field: "email", Message: "is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &usecases.ValidationError{Field: "email", Message: "is not a valid address"}
	}
	return nil
}
