package usecases

import (
	"strings"
	"time"

	"telos/internal/models"
)

const (
	recentPerType = 2
	recentMax     = 4
)

type StatCard struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Path  string `json:"path"`
}

type RecentItem struct {
	Type   models.EntityType `json:"type"`
	Title  string            `json:"title"`
	Time   time.Time         `json:"time"`
	Status string            `json:"status"`
}

type Dashboard struct {
	Stats       []StatCard                `json:"stats"`
	RecentItems []RecentItem              `json:"recent_items"`
	Activity    []models.ActivityLogEntry `json:"activity"`
}

// BuildDashboard expects the snapshot lists ordered newest first.
func BuildDashboard(s Snapshot, activity []models.ActivityLogEntry) Dashboard {
	activeProblems := 0
	for _, p := range s.Problems {
		if p.Status == models.StatusActive {
			activeProblems++
		}
	}

	if activity == nil {
		activity = []models.ActivityLogEntry{}
	}

	return Dashboard{
		Stats: []StatCard{
			{Label: "Active Problems", Value: activeProblems, Path: "/problems"},
			{Label: "Goals Set", Value: len(s.Goals), Path: "/goals"},
			{Label: "Mission Statements", Value: len(s.Missions), Path: "/mission"},
			{Label: "Challenges", Value: len(s.Challenges), Path: "/challenges"},
		},
		RecentItems: recentItems(s),
		Activity:    activity,
	}
}

func recentItems(s Snapshot) []RecentItem {
	items := make([]RecentItem, 0, recentMax)

	for i, p := range s.Problems {
		if i == recentPerType {
			break
		}
		items = append(items, RecentItem{
			Type:   models.EntityProblem,
			Title:  ProblemSummary(&p) + "...",
			Time:   p.CreatedAt,
			Status: strings.ToLower(p.Priority),
		})
	}
	for i, g := range s.Goals {
		if i == recentPerType {
			break
		}
		items = append(items, RecentItem{
			Type:   models.EntityGoal,
			Title:  GoalSummary(&g) + "...",
			Time:   g.CreatedAt,
			Status: strings.ToLower(g.Status),
		})
	}

	if len(items) > recentMax {
		items = items[:recentMax]
	}
	return items
}
