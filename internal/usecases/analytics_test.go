package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"telos/internal/models"
)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Problems: []models.Problem{
			{Priority: "High", Status: "Active"},
			{Priority: "Low", Status: "Resolved"},
			{Priority: "High", Status: "Pending"},
		},
		Goals: []models.Goal{
			{Priority: "Medium", Status: "Completed", Progress: 100},
			{Priority: "High", Status: "Active", Progress: 25},
		},
		Missions: []models.Mission{{}, {}},
		Challenges: []models.Challenge{
			{Impact: "Low", Status: "Active"},
			{Impact: "Medium", Status: "Completed"},
		},
	}
}

func TestSummarize(t *testing.T) {
	sum := Summarize(sampleSnapshot())

	assert.Equal(t, map[string]int{"High": 3, "Medium": 2, "Low": 2}, sum.PriorityCount)
	assert.Equal(t, 1, sum.StatusCount.Problems["Resolved"])
	assert.Equal(t, 1, sum.StatusCount.Goals["Completed"])
	assert.Equal(t, 3, sum.TotalProblems)
	assert.Equal(t, 2, sum.TotalGoals)
	assert.Equal(t, 2, sum.TotalMissions)
	assert.Equal(t, 2, sum.TotalChallenges)
	assert.Equal(t, 1, sum.CompletedGoals)
	assert.Equal(t, 1, sum.ActiveChallenges)
	assert.InDelta(t, 62.5, sum.AvgProgress, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(Snapshot{})

	assert.Zero(t, sum.AvgProgress)
	assert.Empty(t, sum.PriorityCount)
}

func TestBuildAnalyticsCharts(t *testing.T) {
	a := BuildAnalytics(sampleSnapshot())

	assert.Equal(t, []ChartSlice{
		{Name: "High Priority", Value: 3},
		{Name: "Medium Priority", Value: 2},
		{Name: "Low Priority", Value: 2},
	}, a.PriorityDistribution)

	assert.Equal(t, []string{"Problems", "Goals", "Challenges"}, a.StatusDistribution.Categories)
	assert.Equal(t, []ChartSeries{
		{Name: "Active", Data: []int{1, 1, 1}},
		{Name: "Pending", Data: []int{1, 0, 0}},
		{Name: "Completed", Data: []int{1, 1, 1}},
	}, a.StatusDistribution.Series)

	assert.Equal(t, KPICard{Title: "Goals Progress", Value: "63%"}, a.KPIs[1])
	assert.Equal(t, "Average goal progress is 63%. Keep pushing towards completion.", a.Insights[1].Text)
	assert.Contains(t, a.Insights[2].Text, "2 mission statements")
}

func TestBuildDashboard(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := Snapshot{
		Problems: []models.Problem{
			{Description: "p1", Priority: "High", Status: "Active", CreatedAt: base.Add(3 * time.Hour)},
			{Description: "p2", Priority: "Low", Status: "Resolved", CreatedAt: base.Add(2 * time.Hour)},
			{Description: "p3", Priority: "Low", Status: "Active", CreatedAt: base.Add(time.Hour)},
		},
		Goals: []models.Goal{
			{Description: "g1", Status: "Active", CreatedAt: base},
		},
		Missions: []models.Mission{{}},
	}

	d := BuildDashboard(s, nil)

	assert.Equal(t, []StatCard{
		{Label: "Active Problems", Value: 2, Path: "/problems"},
		{Label: "Goals Set", Value: 1, Path: "/goals"},
		{Label: "Mission Statements", Value: 1, Path: "/mission"},
		{Label: "Challenges", Value: 0, Path: "/challenges"},
	}, d.Stats)

	if assert.Len(t, d.RecentItems, 3) {
		assert.Equal(t, "Problem: p1...", d.RecentItems[0].Title)
		assert.Equal(t, "high", d.RecentItems[0].Status)
		assert.Equal(t, "Problem: p2...", d.RecentItems[1].Title)
		assert.Equal(t, models.EntityGoal, d.RecentItems[2].Type)
		assert.Equal(t, "active", d.RecentItems[2].Status)
	}
	assert.NotNil(t, d.Activity)
}
