package usecases

import (
	"unicode/utf8"

	"telos/internal/models"
)

const previewLen = 50

// Preview cuts s to the first 50 characters, counting runes.
func Preview(s string) string {
	if utf8.RuneCountInString(s) <= previewLen {
		return s
	}
	return string([]rune(s)[:previewLen])
}

func ProblemSummary(p *models.Problem) string     { return "Problem: " + Preview(p.Description) }
func GoalSummary(g *models.Goal) string           { return "Goal: " + Preview(g.Description) }
func MissionSummary(m *models.Mission) string     { return "Mission: " + Preview(m.Statement) }
func ChallengeSummary(c *models.Challenge) string { return "Challenge: " + Preview(c.Description) }
