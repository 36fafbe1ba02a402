package usecases

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telos/internal/models"
)

func TestNormalizeProblemDefaults(t *testing.T) {
	p := models.Problem{Description: "  churn is rising  "}

	require.NoError(t, NormalizeProblem(&p))

	assert.Equal(t, "churn is rising", p.Description)
	assert.Equal(t, models.PriorityMedium, p.Priority)
	assert.Equal(t, models.StatusActive, p.Status)
}

func TestNormalizeProblemCanonicalizesCase(t *testing.T) {
	p := models.Problem{Description: "x", Priority: "high", Status: "RESOLVED"}

	require.NoError(t, NormalizeProblem(&p))

	assert.Equal(t, models.PriorityHigh, p.Priority)
	assert.Equal(t, models.StatusResolved, p.Status)
}

func TestNormalizeRejectsBlankDescription(t *testing.T) {
	p := models.Problem{Description: "   "}

	err := NormalizeProblem(&p)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "description", verr.Field)
}

func TestNormalizeProblemRejectsGoalStatus(t *testing.T) {
	p := models.Problem{Description: "x", Status: models.StatusCompleted}

	err := NormalizeProblem(&p)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "status", verr.Field)
}

func TestNormalizeGoal(t *testing.T) {
	g := models.Goal{Description: "ship v2", Progress: 40}

	require.NoError(t, NormalizeGoal(&g))
	assert.Equal(t, models.StatusPending, g.Status)
	assert.Equal(t, models.PriorityMedium, g.Priority)

	g.Progress = 101
	assert.Error(t, NormalizeGoal(&g))

	g.Progress = -1
	assert.Error(t, NormalizeGoal(&g))
}

func TestNormalizeMission(t *testing.T) {
	m := models.Mission{Statement: "serve makers"}
	require.NoError(t, NormalizeMission(&m))
	assert.Equal(t, "Core Mission", m.Category)

	m = models.Mission{Statement: "x", Category: "vision mission"}
	require.NoError(t, NormalizeMission(&m))
	assert.Equal(t, "Vision Mission", m.Category)

	m = models.Mission{Statement: "x", Category: "Side Quest"}
	assert.Error(t, NormalizeMission(&m))

	m = models.Mission{}
	assert.Error(t, NormalizeMission(&m))
}

func TestNormalizeChallenge(t *testing.T) {
	c := models.Challenge{Description: "hiring"}
	require.NoError(t, NormalizeChallenge(&c))
	assert.Equal(t, models.PriorityMedium, c.Impact)
	assert.Equal(t, models.StatusPending, c.Status)
	assert.Equal(t, "Operational", c.Category)

	c.Category = "Market"
	c.Impact = "low"
	require.NoError(t, NormalizeChallenge(&c))
	assert.Equal(t, models.PriorityLow, c.Impact)

	c.Status = models.StatusResolved
	assert.Error(t, NormalizeChallenge(&c))
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short"))

	long := "абвгдеёжзийклмнопрстуфхцчшщъыьэюяабвгдеёжзийклмнопрст"
	got := Preview(long)
	assert.Equal(t, 50, len([]rune(got)))
	assert.Equal(t, []rune(long)[:50], []rune(got))
}
