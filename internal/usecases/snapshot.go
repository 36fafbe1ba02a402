package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"telos/internal/models"
)

type Lister[T any] interface {
	List(ctx context.Context, userID uuid.UUID) ([]T, error)
}

// Sources are the four planning tables a Snapshot reads from.
type Sources struct {
	Problems   Lister[models.Problem]
	Goals      Lister[models.Goal]
	Missions   Lister[models.Mission]
	Challenges Lister[models.Challenge]
}

// Snapshot holds every planning record of one user, each list newest first.
type Snapshot struct {
	Problems   []models.Problem
	Goals      []models.Goal
	Missions   []models.Mission
	Challenges []models.Challenge
}

// LoadSnapshot fetches the four tables concurrently. The first failure
// cancels the remaining reads.
func LoadSnapshot(ctx context.Context, src Sources, userID uuid.UUID) (Snapshot, error) {
	op := "internal/usecases/snapshot.go LoadSnapshot"

	var s Snapshot
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		s.Problems, err = src.Problems.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		s.Goals, err = src.Goals.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		s.Missions, err = src.Missions.List(ctx, userID)
		return err
	})
	g.Go(func() (err error) {
		s.Challenges, err = src.Challenges.List(ctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w", op, err)
	}
	return s, nil
}
