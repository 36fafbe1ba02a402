// Package testutil provides in-memory stand-ins for the Postgres storages.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"telos/internal/models"
	"telos/internal/storage"
)

// Users implements the user, session and profile storage contracts.
type Users struct {
	mu       sync.Mutex
	users    map[uuid.UUID]models.User
	sessions map[string]models.Session
	profiles map[uuid.UUID]models.UserProfile

	// Error injection for testing
	CreateUserErr error
}

func NewUsers() *Users {
	return &Users{
		users:    map[uuid.UUID]models.User{},
		sessions: map[string]models.Session{},
		profiles: map[uuid.UUID]models.UserProfile{},
	}
}

func (f *Users) CreateUser(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateUserErr != nil {
		return f.CreateUserErr
	}

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return storage.ErrDuplicate
		}
		if u.GoogleSubject != "" && existing.GoogleSubject == u.GoogleSubject {
			return storage.ErrDuplicate
		}
	}

	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	f.users[u.ID] = *u
	return nil
}

func (f *Users) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (f *Users) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (f *Users) GetUserByGoogleSubject(ctx context.Context, subject string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.GoogleSubject != "" && u.GoogleSubject == subject {
			return u, nil
		}
	}
	return models.User{}, storage.ErrNotFound
}

func (f *Users) LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.GoogleSubject = subject
	f.users[id] = u
	return nil
}

func (f *Users) CreateSession(ctx context.Context, s *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.sessions[s.TokenHash]; ok {
		return storage.ErrDuplicate
	}
	f.sessions[s.TokenHash] = *s
	return nil
}

func (f *Users) GetSession(ctx context.Context, tokenHash string) (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[tokenHash]
	if !ok {
		return models.Session{}, storage.ErrNotFound
	}
	return s, nil
}

func (f *Users) DeleteSession(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.sessions, tokenHash)
	return nil
}

// SessionCount is the number of stored sessions.
func (f *Users) SessionCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

func (f *Users) GetProfile(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.profiles[userID]
	if !ok {
		return models.UserProfile{}, storage.ErrNotFound
	}
	return p, nil
}

func (f *Users) CreateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if existing, ok := f.profiles[p.UserID]; ok {
		return existing, nil
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.profiles[p.UserID] = p
	return p, nil
}

func (f *Users) UpdateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.profiles[p.UserID]
	if !ok {
		return models.UserProfile{}, storage.ErrNotFound
	}
	existing.FullName = p.FullName
	existing.AvatarURL = p.AvatarURL
	existing.UpdatedAt = time.Now()
	f.profiles[p.UserID] = existing
	return existing, nil
}

// Table is an in-memory entity table keyed by id. The accessor functions
// teach it where a record keeps its identity and timestamps.
type Table[T any] struct {
	mu   sync.Mutex
	rows map[uuid.UUID]T
	seq  time.Time

	ident func(*T) (id, owner *uuid.UUID, created, updated *time.Time)

	ListErr error
}

func newTable[T any](ident func(*T) (*uuid.UUID, *uuid.UUID, *time.Time, *time.Time)) *Table[T] {
	return &Table[T]{
		rows:  map[uuid.UUID]T{},
		seq:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ident: ident,
	}
}

func NewProblems() *Table[models.Problem] {
	return newTable(func(p *models.Problem) (*uuid.UUID, *uuid.UUID, *time.Time, *time.Time) {
		return &p.ID, &p.UserID, &p.CreatedAt, &p.UpdatedAt
	})
}

func NewGoals() *Table[models.Goal] {
	return newTable(func(g *models.Goal) (*uuid.UUID, *uuid.UUID, *time.Time, *time.Time) {
		return &g.ID, &g.UserID, &g.CreatedAt, &g.UpdatedAt
	})
}

func NewMissions() *Table[models.Mission] {
	return newTable(func(m *models.Mission) (*uuid.UUID, *uuid.UUID, *time.Time, *time.Time) {
		return &m.ID, &m.UserID, &m.CreatedAt, &m.UpdatedAt
	})
}

func NewChallenges() *Table[models.Challenge] {
	return newTable(func(c *models.Challenge) (*uuid.UUID, *uuid.UUID, *time.Time, *time.Time) {
		return &c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt
	})
}

// tick hands out strictly increasing timestamps so ordering is deterministic.
func (t *Table[T]) tick() time.Time {
	t.seq = t.seq.Add(time.Second)
	return t.seq
}

func (t *Table[T]) List(ctx context.Context, userID uuid.UUID) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ListErr != nil {
		return nil, t.ListErr
	}

	out := []T{}
	for _, row := range t.rows {
		r := row
		if _, owner, _, _ := t.ident(&r); *owner == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		_, _, ci, _ := t.ident(&out[i])
		_, _, cj, _ := t.ident(&out[j])
		return ci.After(*cj)
	})
	return out, nil
}

func (t *Table[T]) Get(ctx context.Context, userID, id uuid.UUID) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	row, ok := t.rows[id]
	if !ok {
		return zero, storage.ErrNotFound
	}
	if _, owner, _, _ := t.ident(&row); *owner != userID {
		return zero, storage.ErrNotFound
	}
	return row, nil
}

func (t *Table[T]) Create(ctx context.Context, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, _, created, updated := t.ident(row)
	*id = uuid.New()
	*created = t.tick()
	*updated = *created
	t.rows[*id] = *row
	return nil
}

func (t *Table[T]) Update(ctx context.Context, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id, owner, created, updated := t.ident(row)
	existing, ok := t.rows[*id]
	if !ok {
		return storage.ErrNotFound
	}
	_, existingOwner, existingCreated, _ := t.ident(&existing)
	if *existingOwner != *owner {
		return storage.ErrNotFound
	}

	*created = *existingCreated
	*updated = t.tick()
	t.rows[*id] = *row
	return nil
}

func (t *Table[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	row, ok := t.rows[id]
	if !ok {
		return storage.ErrNotFound
	}
	if _, owner, _, _ := t.ident(&row); *owner != userID {
		return storage.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *Table[T]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

type Activity struct {
	mu      sync.Mutex
	entries []models.ActivityLogEntry
}

func NewActivity() *Activity {
	return &Activity{}
}

func (a *Activity) Append(ctx context.Context, e *models.ActivityLogEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	e.ID = uuid.New()
	e.CreatedAt = time.Now()
	a.entries = append(a.entries, *e)
	return nil
}

func (a *Activity) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.ActivityLogEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := []models.ActivityLogEntry{}
	for i := len(a.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if a.entries[i].UserID == userID {
			out = append(out, a.entries[i])
		}
	}
	return out, nil
}

// Entries returns everything appended so far, oldest first.
func (a *Activity) Entries() []models.ActivityLogEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.ActivityLogEntry(nil), a.entries...)
}
