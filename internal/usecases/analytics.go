package usecases

import (
	"fmt"
	"math"
	"strconv"

	"telos/internal/models"
)

type StatusCounts struct {
	Problems   map[string]int `json:"problems"`
	Goals      map[string]int `json:"goals"`
	Challenges map[string]int `json:"challenges"`
}

// Summary is the raw aggregation behind the analytics charts.
type Summary struct {
	PriorityCount    map[string]int `json:"priority_count"`
	StatusCount      StatusCounts   `json:"status_count"`
	TotalProblems    int            `json:"total_problems"`
	TotalGoals       int            `json:"total_goals"`
	TotalMissions    int            `json:"total_missions"`
	TotalChallenges  int            `json:"total_challenges"`
	CompletedGoals   int            `json:"completed_goals"`
	ActiveChallenges int            `json:"active_challenges"`
	AvgProgress      float64        `json:"avg_progress"`
}

type ChartSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type ChartSeries struct {
	Name string `json:"name"`
	Data []int  `json:"data"`
}

type StackedChart struct {
	Categories []string      `json:"categories"`
	Series     []ChartSeries `json:"series"`
}

type KPICard struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type Insight struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type Analytics struct {
	Summary              Summary      `json:"summary"`
	PriorityDistribution []ChartSlice `json:"priority_distribution"`
	StatusDistribution   StackedChart `json:"status_distribution"`
	KPIs                 []KPICard    `json:"kpis"`
	Insights             []Insight    `json:"insights"`
}

// Summarize counts priorities over problems, goals and challenges. A
// challenge has no priority of its own; its impact level stands in for it.
func Summarize(s Snapshot) Summary {
	sum := Summary{
		PriorityCount: map[string]int{},
		StatusCount: StatusCounts{
			Problems:   map[string]int{},
			Goals:      map[string]int{},
			Challenges: map[string]int{},
		},
		TotalProblems:   len(s.Problems),
		TotalGoals:      len(s.Goals),
		TotalMissions:   len(s.Missions),
		TotalChallenges: len(s.Challenges),
	}

	for _, p := range s.Problems {
		sum.PriorityCount[p.Priority]++
		sum.StatusCount.Problems[p.Status]++
	}

	progress := 0
	for _, g := range s.Goals {
		sum.PriorityCount[g.Priority]++
		sum.StatusCount.Goals[g.Status]++
		if g.Status == models.StatusCompleted {
			sum.CompletedGoals++
		}
		progress += g.Progress
	}
	if len(s.Goals) > 0 {
		sum.AvgProgress = float64(progress) / float64(len(s.Goals))
	}

	for _, c := range s.Challenges {
		sum.PriorityCount[c.Impact]++
		sum.StatusCount.Challenges[c.Status]++
		if c.Status == models.StatusActive {
			sum.ActiveChallenges++
		}
	}

	return sum
}

func BuildAnalytics(s Snapshot) Analytics {
	sum := Summarize(s)
	avg := int(math.Round(sum.AvgProgress))

	return Analytics{
		Summary: sum,
		PriorityDistribution: []ChartSlice{
			{Name: "High Priority", Value: sum.PriorityCount[models.PriorityHigh]},
			{Name: "Medium Priority", Value: sum.PriorityCount[models.PriorityMedium]},
			{Name: "Low Priority", Value: sum.PriorityCount[models.PriorityLow]},
		},
		StatusDistribution: statusChart(sum.StatusCount),
		KPIs: []KPICard{
			{Title: "Total Problems", Value: strconv.Itoa(sum.TotalProblems)},
			{Title: "Goals Progress", Value: fmt.Sprintf("%d%%", avg)},
			{Title: "Active Challenges", Value: strconv.Itoa(sum.ActiveChallenges)},
			{Title: "Mission Statements", Value: strconv.Itoa(sum.TotalMissions)},
		},
		Insights: []Insight{
			{
				Title: "Problem Management",
				Text:  fmt.Sprintf("You have %d problems tracked. Focus on high-priority items first.", sum.TotalProblems),
			},
			{
				Title: "Goal Progress",
				Text:  fmt.Sprintf("Average goal progress is %d%%. Keep pushing towards completion.", avg),
			},
			{
				Title: "Strategic Alignment",
				Text:  fmt.Sprintf("%d mission statements provide strategic direction for your organization.", sum.TotalMissions),
			},
		},
	}
}

// The Completed series reads Resolved for problems.
func statusChart(c StatusCounts) StackedChart {
	return StackedChart{
		Categories: []string{"Problems", "Goals", "Challenges"},
		Series: []ChartSeries{
			{
				Name: models.StatusActive,
				Data: []int{c.Problems[models.StatusActive], c.Goals[models.StatusActive], c.Challenges[models.StatusActive]},
			},
			{
				Name: models.StatusPending,
				Data: []int{c.Problems[models.StatusPending], c.Goals[models.StatusPending], c.Challenges[models.StatusPending]},
			},
			{
				Name: models.StatusCompleted,
				Data: []int{c.Problems[models.StatusResolved], c.Goals[models.StatusCompleted], c.Challenges[models.StatusCompleted]},
			},
		},
	}
}
