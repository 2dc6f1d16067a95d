package performance

const (
	GoalStatusPending    = "Pending"
	GoalStatusInProgress = "In Progress"
	GoalStatusCompleted  = "Completed"

	// StatusFilterAll disables status filtering in ListGoals.
	StatusFilterAll = "All"
)

var GoalStatuses = []string{GoalStatusPending, GoalStatusInProgress, GoalStatusCompleted}

const (
	tableEmployees = "employees"
	tableGoals     = "goals"
	tableFeedback  = "feedback"
)
