package models

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

const (
	StatusActive    = "Active"
	StatusPending   = "Pending"
	StatusResolved  = "Resolved"
	StatusCompleted = "Completed"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

var ProblemStatuses = []string{StatusActive, StatusPending, StatusResolved}

// Goals and challenges share the same lifecycle.
var GoalStatuses = []string{StatusPending, StatusActive, StatusCompleted}

var ChallengeStatuses = GoalStatuses

var MissionCategories = []string{
	"Core Mission",
	"Operational Mission",
	"Values Mission",
	"Vision Mission",
}

var ChallengeCategories = []string{
	"Operational",
	"Financial",
	"Technical",
	"Quality",
	"Innovation",
	"Market",
}

// EntityType names one of the four planning tables.
type EntityType string

const (
	EntityProblem   EntityType = "problem"
	EntityGoal      EntityType = "goal"
	EntityMission   EntityType = "mission"
	EntityChallenge EntityType = "challenge"
)
