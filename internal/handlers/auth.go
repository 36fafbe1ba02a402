package handlers

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"telos/internal/auth"
	"telos/internal/models"
)

const (
	stateCookie = "telos_oauth_state"
	stateTTL    = 10 * time.Minute
)

type AuthService interface {
	Authenticator
	SignUp(ctx context.Context, email, password, fullName string) (auth.Result, error)
	SignIn(ctx context.Context, email, password string) (auth.Result, error)
	SignInWithGoogle(ctx context.Context, id auth.GoogleIdentity) (auth.Result, error)
	SignOut(ctx context.Context, token string) error
	Me(ctx context.Context, userID uuid.UUID) (models.User, models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, fullName, avatarURL string) (models.UserProfile, error)
}

type GoogleAuth interface {
	AuthURL(state string) string
	Exchange(ctx context.Context, code string) (auth.GoogleIdentity, error)
}

type AuthHandler struct {
	service AuthService
	google  GoogleAuth
	log     *zap.Logger

	// afterGoogle is where the browser lands once Google sign-in completes.
	afterGoogle string
}

// NewAuthHandler builds the handler; google may be nil when the provider is
// not configured.
func NewAuthHandler(service AuthService, google GoogleAuth, log *zap.Logger) *AuthHandler {
	return &AuthHandler{service: service, google: google, log: log, afterGoogle: "/"}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type meResponse struct {
	User        models.User        `json:"user"`
	Profile     models.UserProfile `json:"profile"`
	DisplayName string             `json:"display_name"`
}

func (h *AuthHandler) HandleSignUp(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleSignUp"

	var in credentials
	if err := decodeJSON(w, r, &in); err != nil {
		badJSON(w, h.log, op, err)
		return
	}

	res, err := h.service.SignUp(r.Context(), in.Email, in.Password, in.FullName)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	setSessionCookie(w, r, res.Token, res.ExpiresAt)
	writeData(w, h.log, op, http.StatusCreated, res)
}

func (h *AuthHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleSignIn"

	var in credentials
	if err := decodeJSON(w, r, &in); err != nil {
		badJSON(w, h.log, op, err)
		return
	}

	res, err := h.service.SignIn(r.Context(), in.Email, in.Password)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	setSessionCookie(w, r, res.Token, res.ExpiresAt)
	writeData(w, h.log, op, http.StatusOK, res)
}

func (h *AuthHandler) HandleSignOut(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleSignOut"

	if err := h.service.SignOut(r.Context(), sessionToken(r)); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	clearCookie(w, r, sessionCookie)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleMe"
	userID, _ := UserID(r.Context())

	user, profile, err := h.service.Me(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	writeData(w, h.log, op, http.StatusOK, meResponse{
		User:        user,
		Profile:     profile,
		DisplayName: auth.DisplayName(user, profile),
	})
}

func (h *AuthHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleUpdateProfile"
	userID, _ := UserID(r.Context())

	var in struct {
		FullName  string `json:"full_name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := decodeJSON(w, r, &in); err != nil {
		badJSON(w, h.log, op, err)
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userID, in.FullName, in.AvatarURL)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeData(w, h.log, op, http.StatusOK, profile)
}

// /api/auth/google -> redirect to google
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleGoogleLogin"

	if h.google == nil {
		writeMessage(w, h.log, op, http.StatusNotFound, "Google sign-in provider is not enabled")
		return
	}

	state, err := auth.NewToken()
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(stateTTL.Seconds()),
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// /api/auth/google/callback -> Google sends code here
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleGoogleCallback"

	if h.google == nil {
		writeMessage(w, h.log, op, http.StatusNotFound, "Google sign-in provider is not enabled")
		return
	}

	cookie, err := r.Cookie(stateCookie)
	state := r.URL.Query().Get("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) != 1 {
		writeMessage(w, h.log, op, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	clearCookie(w, r, stateCookie)

	code := r.URL.Query().Get("code")
	if code == "" {
		writeMessage(w, h.log, op, http.StatusBadRequest, "Code not found")
		return
	}

	identity, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.log.Warn("google exchange failed", zap.String("op", op), zap.Error(err))
		writeMessage(w, h.log, op, http.StatusBadGateway, "Failed to exchange code")
		return
	}

	res, err := h.service.SignInWithGoogle(r.Context(), identity)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	setSessionCookie(w, r, res.Token, res.ExpiresAt)
	http.Redirect(w, r, h.afterGoogle, http.StatusSeeOther)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
	})
}

func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https"
}
