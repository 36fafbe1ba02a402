package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"telos/internal/models"
	"telos/internal/usecases"
)

// ActivityStore both records and reads the activity log.
type ActivityStore interface {
	ActivityRecorder
	ActivityReader
}

type Deps struct {
	Auth       AuthService
	Google     GoogleAuth
	Problems   EntityStore[models.Problem]
	Goals      EntityStore[models.Goal]
	Missions   EntityStore[models.Mission]
	Challenges EntityStore[models.Challenge]
	Activity   ActivityStore
	Assistant  Assistant
	Log        *zap.Logger
	CORSOrigin string
}

func NewRouter(d Deps) http.Handler {
	authHandler := NewAuthHandler(d.Auth, d.Google, d.Log)
	chatHandler := NewChatHandler(d.Assistant, d.Log)
	insights := NewInsightsHandler(usecases.Sources{
		Problems:   d.Problems,
		Goals:      d.Goals,
		Missions:   d.Missions,
		Challenges: d.Challenges,
	}, d.Activity, d.Log)

	mux := http.NewServeMux()
	protect := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(d.Auth, d.Log, h)
	}

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("POST /api/auth/signup", authHandler.HandleSignUp)
	mux.HandleFunc("POST /api/auth/signin", authHandler.HandleSignIn)
	mux.HandleFunc("POST /api/auth/signout", authHandler.HandleSignOut)
	mux.HandleFunc("GET /api/auth/google", authHandler.HandleGoogleLogin)
	mux.HandleFunc("GET /api/auth/google/callback", authHandler.HandleGoogleCallback)

	mux.Handle("GET /api/me", protect(authHandler.HandleMe))
	mux.Handle("PUT /api/me/profile", protect(authHandler.HandleUpdateProfile))

	mountEntity(mux, "/api/problems", NewProblemHandler(d.Problems, d.Activity, d.Log), protect)
	mountEntity(mux, "/api/goals", NewGoalHandler(d.Goals, d.Activity, d.Log), protect)
	mountEntity(mux, "/api/missions", NewMissionHandler(d.Missions, d.Activity, d.Log), protect)
	mountEntity(mux, "/api/challenges", NewChallengeHandler(d.Challenges, d.Activity, d.Log), protect)

	mux.Handle("GET /api/dashboard", protect(insights.HandleDashboard))
	mux.Handle("GET /api/analytics", protect(insights.HandleAnalytics))

	mux.Handle("GET /api/assistant/greetings", protect(chatHandler.HandleGreetings))
	mux.Handle("POST /api/assistant/chat", protect(chatHandler.HandleChat))

	return CORS(d.CORSOrigin, LogRequests(d.Log, mux))
}

func mountEntity[T any](mux *http.ServeMux, prefix string, h *EntityHandler[T], protect func(http.HandlerFunc) http.Handler) {
	mux.Handle("GET "+prefix, protect(h.HandleList))
	mux.Handle("POST "+prefix, protect(h.HandleCreate))
	mux.Handle("GET "+prefix+"/{id}", protect(h.HandleGet))
	mux.Handle("PUT "+prefix+"/{id}", protect(h.HandleUpdate))
	mux.Handle("DELETE "+prefix+"/{id}", protect(h.HandleDelete))
}
