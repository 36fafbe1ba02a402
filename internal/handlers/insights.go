package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"telos/internal/models"
	"telos/internal/usecases"
)

const recentActivityLimit = 10

type ActivityReader interface {
	ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.ActivityLogEntry, error)
}

// InsightsHandler serves the dashboard and analytics views, both of which
// aggregate every planning table of the signed-in user.
type InsightsHandler struct {
	sources  usecases.Sources
	activity ActivityReader
	log      *zap.Logger
}

func NewInsightsHandler(sources usecases.Sources, activity ActivityReader, log *zap.Logger) *InsightsHandler {
	return &InsightsHandler{sources: sources, activity: activity, log: log}
}

func (ih *InsightsHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleDashboard"
	userID, _ := UserID(r.Context())

	snap, err := usecases.LoadSnapshot(r.Context(), ih.sources, userID)
	if err != nil {
		writeError(w, ih.log, op, err)
		return
	}

	activity, err := ih.activity.ListRecent(r.Context(), userID, recentActivityLimit)
	if err != nil {
		writeError(w, ih.log, op, err)
		return
	}

	writeData(w, ih.log, op, http.StatusOK, usecases.BuildDashboard(snap, activity))
}

func (ih *InsightsHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	op := "handlers.HandleAnalytics"
	userID, _ := UserID(r.Context())

	snap, err := usecases.LoadSnapshot(r.Context(), ih.sources, userID)
	if err != nil {
		writeError(w, ih.log, op, err)
		return
	}

	writeData(w, ih.log, op, http.StatusOK, usecases.BuildAnalytics(snap))
}
