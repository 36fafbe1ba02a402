package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"telos/internal/models"
	"telos/internal/usecases"
)

// EntityStore is the CRUD contract every planning table satisfies.
type EntityStore[T any] interface {
	List(ctx context.Context, userID uuid.UUID) ([]T, error)
	Get(ctx context.Context, userID, id uuid.UUID) (T, error)
	Create(ctx context.Context, row *T) error
	Update(ctx context.Context, row *T) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type ActivityRecorder interface {
	Append(ctx context.Context, e *models.ActivityLogEntry) error
}

type entityKind[T any] struct {
	kind      models.EntityType
	normalize func(*T) error
	summary   func(*T) string
	key       func(*T) (id, owner *uuid.UUID)
	decode    func(w http.ResponseWriter, r *http.Request) (T, error)
}

// EntityHandler serves list/get/create/update/delete for one entity type.
type EntityHandler[T any] struct {
	store    EntityStore[T]
	activity ActivityRecorder
	log      *zap.Logger
	entity   entityKind[T]
}

func decodeEntity[T any](w http.ResponseWriter, r *http.Request) (T, error) {
	var row T
	err := decodeJSON(w, r, &row)
	return row, err
}

func NewProblemHandler(store EntityStore[models.Problem], activity ActivityRecorder, log *zap.Logger) *EntityHandler[models.Problem] {
	return &EntityHandler[models.Problem]{store: store, activity: activity, log: log, entity: entityKind[models.Problem]{
		kind:      models.EntityProblem,
		normalize: usecases.NormalizeProblem,
		summary:   usecases.ProblemSummary,
		key:       func(p *models.Problem) (*uuid.UUID, *uuid.UUID) { return &p.ID, &p.UserID },
		decode:    decodeEntity[models.Problem],
	}}
}

func NewGoalHandler(store EntityStore[models.Goal], activity ActivityRecorder, log *zap.Logger) *EntityHandler[models.Goal] {
	return &EntityHandler[models.Goal]{store: store, activity: activity, log: log, entity: entityKind[models.Goal]{
		kind:      models.EntityGoal,
		normalize: usecases.NormalizeGoal,
		summary:   usecases.GoalSummary,
		key:       func(g *models.Goal) (*uuid.UUID, *uuid.UUID) { return &g.ID, &g.UserID },
		decode:    decodeGoal,
	}}
}

func NewMissionHandler(store EntityStore[models.Mission], activity ActivityRecorder, log *zap.Logger) *EntityHandler[models.Mission] {
	return &EntityHandler[models.Mission]{store: store, activity: activity, log: log, entity: entityKind[models.Mission]{
		kind:      models.EntityMission,
		normalize: usecases.NormalizeMission,
		summary:   usecases.MissionSummary,
		key:       func(m *models.Mission) (*uuid.UUID, *uuid.UUID) { return &m.ID, &m.UserID },
		decode:    decodeEntity[models.Mission],
	}}
}

func NewChallengeHandler(store EntityStore[models.Challenge], activity ActivityRecorder, log *zap.Logger) *EntityHandler[models.Challenge] {
	return &EntityHandler[models.Challenge]{store: store, activity: activity, log: log, entity: entityKind[models.Challenge]{
		kind:      models.EntityChallenge,
		normalize: usecases.NormalizeChallenge,
		summary:   usecases.ChallengeSummary,
		key:       func(c *models.Challenge) (*uuid.UUID, *uuid.UUID) { return &c.ID, &c.UserID },
		decode:    decodeEntity[models.Challenge],
	}}
}

func (eh *EntityHandler[T]) op(action string) string {
	return "handlers." + string(eh.entity.kind) + "." + action
}

func (eh *EntityHandler[T]) HandleList(w http.ResponseWriter, r *http.Request) {
	op := eh.op("List")
	userID, _ := UserID(r.Context())

	rows, err := eh.store.List(r.Context(), userID)
	if err != nil {
		writeError(w, eh.log, op, err)
		return
	}
	writeData(w, eh.log, op, http.StatusOK, rows)
}

func (eh *EntityHandler[T]) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := eh.op("Get")
	userID, _ := UserID(r.Context())

	id, ok := pathID(w, r, eh.log, op)
	if !ok {
		return
	}

	row, err := eh.store.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, eh.log, op, err)
		return
	}
	writeData(w, eh.log, op, http.StatusOK, row)
}

func (eh *EntityHandler[T]) HandleCreate(w http.ResponseWriter, r *http.Request) {
	op := eh.op("Create")
	userID, _ := UserID(r.Context())

	row, err := eh.entity.decode(w, r)
	if err != nil {
		badJSON(w, eh.log, op, err)
		return
	}

	id, owner := eh.entity.key(&row)
	*id = uuid.Nil
	*owner = userID

	if err := eh.entity.normalize(&row); err != nil {
		writeError(w, eh.log, op, err)
		return
	}
	if err := eh.store.Create(r.Context(), &row); err != nil {
		writeError(w, eh.log, op, err)
		return
	}

	eh.record(r.Context(), op, &row, models.ActionCreated)
	writeData(w, eh.log, op, http.StatusCreated, row)
}

// HandleUpdate replaces every editable field of the record named by the path.
func (eh *EntityHandler[T]) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	op := eh.op("Update")
	userID, _ := UserID(r.Context())

	pid, ok := pathID(w, r, eh.log, op)
	if !ok {
		return
	}

	row, err := eh.entity.decode(w, r)
	if err != nil {
		badJSON(w, eh.log, op, err)
		return
	}

	id, owner := eh.entity.key(&row)
	*id = pid
	*owner = userID

	if err := eh.entity.normalize(&row); err != nil {
		writeError(w, eh.log, op, err)
		return
	}
	if err := eh.store.Update(r.Context(), &row); err != nil {
		writeError(w, eh.log, op, err)
		return
	}

	eh.record(r.Context(), op, &row, models.ActionUpdated)
	writeData(w, eh.log, op, http.StatusOK, row)
}

func (eh *EntityHandler[T]) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := eh.op("Delete")
	userID, _ := UserID(r.Context())

	id, ok := pathID(w, r, eh.log, op)
	if !ok {
		return
	}

	row, err := eh.store.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, eh.log, op, err)
		return
	}
	if err := eh.store.Delete(r.Context(), userID, id); err != nil {
		writeError(w, eh.log, op, err)
		return
	}

	eh.record(r.Context(), op, &row, models.ActionDeleted)
	w.WriteHeader(http.StatusNoContent)
}

// record appends to the activity log. A failure here never fails the request.
func (eh *EntityHandler[T]) record(ctx context.Context, op string, row *T, action string) {
	id, owner := eh.entity.key(row)
	entry := &models.ActivityLogEntry{
		UserID:     *owner,
		EntityType: eh.entity.kind,
		EntityID:   *id,
		Action:     action,
		Summary:    eh.entity.summary(row),
	}
	if err := eh.activity.Append(ctx, entry); err != nil {
		eh.log.Warn("failed to record activity", zap.String("op", op), zap.Error(err))
	}
}

func pathID(w http.ResponseWriter, r *http.Request, log *zap.Logger, op string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeMessage(w, log, op, http.StatusBadRequest, "Invalid id")
		return uuid.Nil, false
	}
	return id, true
}
