package usecases

import (
	"fmt"
	"strings"

	"telos/internal/models"
)

// ValidationError names the offending field so clients can highlight it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NormalizeProblem trims text fields, fills defaults and checks enums.
func NormalizeProblem(p *models.Problem) error {
	p.Description = strings.TrimSpace(p.Description)
	p.Impact = strings.TrimSpace(p.Impact)
	p.Actions = strings.TrimSpace(p.Actions)

	if p.Description == "" {
		return required("description")
	}

	var err error
	if p.Priority, err = oneOf("priority", p.Priority, models.PriorityMedium, models.Priorities); err != nil {
		return err
	}
	if p.Status, err = oneOf("status", p.Status, models.StatusActive, models.ProblemStatuses); err != nil {
		return err
	}
	return nil
}

func NormalizeGoal(g *models.Goal) error {
	g.Description = strings.TrimSpace(g.Description)
	g.Timeline = strings.TrimSpace(g.Timeline)
	g.SuccessCriteria = strings.TrimSpace(g.SuccessCriteria)

	if g.Description == "" {
		return required("description")
	}
	if g.Progress < 0 || g.Progress > 100 {
		return &ValidationError{Field: "progress", Message: "must be between 0 and 100"}
	}

	var err error
	if g.Priority, err = oneOf("priority", g.Priority, models.PriorityMedium, models.Priorities); err != nil {
		return err
	}
	if g.Status, err = oneOf("status", g.Status, models.StatusPending, models.GoalStatuses); err != nil {
		return err
	}
	return nil
}

func NormalizeMission(m *models.Mission) error {
	m.Statement = strings.TrimSpace(m.Statement)
	m.RelatedProblems = strings.TrimSpace(m.RelatedProblems)

	if m.Statement == "" {
		return required("statement")
	}

	var err error
	m.Category, err = oneOf("category", m.Category, models.MissionCategories[0], models.MissionCategories)
	return err
}

func NormalizeChallenge(c *models.Challenge) error {
	c.Description = strings.TrimSpace(c.Description)
	c.Solutions = strings.TrimSpace(c.Solutions)

	if c.Description == "" {
		return required("description")
	}

	var err error
	if c.Impact, err = oneOf("impact", c.Impact, models.PriorityMedium, models.Priorities); err != nil {
		return err
	}
	if c.Status, err = oneOf("status", c.Status, models.StatusPending, models.ChallengeStatuses); err != nil {
		return err
	}
	if c.Category, err = oneOf("category", c.Category, models.ChallengeCategories[0], models.ChallengeCategories); err != nil {
		return err
	}
	return nil
}

func required(field string) error {
	return &ValidationError{Field: field, Message: "is required"}
}

// oneOf returns the canonical spelling of value, matched case-insensitively,
// or def when value is blank.
func oneOf(field, value, def string, allowed []string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return def, nil
	}
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return a, nil
		}
	}
	return "", &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")),
	}
}
