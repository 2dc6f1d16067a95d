package performance

import "time"

type Employee struct {
	ID   string `json:"employeeId"`
	Name string `json:"name"`
}

type Goal struct {
	ID          string    `json:"goalId"`
	EmployeeID  string    `json:"employeeId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type NewGoal struct {
	EmployeeID  string
	Title       string
	Description string
	DueDate     time.Time
	Status      string
}

// GoalUpdate replaces every mutable field of a goal.
type GoalUpdate struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      string
}

type GoalFilter struct {
	EmployeeID string
	Status     string
	Sort       GoalSort
}

type Feedback struct {
	ID             string    `json:"feedbackId"`
	FromEmployeeID string    `json:"fromEmployeeId"`
	ToEmployeeID   string    `json:"toEmployeeId"`
	Text           string    `json:"feedbackText"`
	CreatedAt      time.Time `json:"createdAt"`
}

type ReceivedFeedback struct {
	Feedback
	FromEmployeeName string `json:"fromEmployeeName"`
}

// Insights is a best-effort snapshot; the metrics are read by independent
// queries and may reflect slightly different points in time.
type Insights struct {
	TotalGoals             int64            `json:"total_goals"`
	TotalEmployees         int64            `json:"total_employees"`
	GoalsByStatus          map[string]int64 `json:"goals_by_status"`
	AvgGoalsPerEmployee    float64          `json:"avg_goals_per_employee"`
	AvgFeedbackPerEmployee float64          `json:"avg_feedback_per_employee"`
	MaxGoalsPerEmployee    int64            `json:"max_goals_per_employee"`
	MinGoalsPerEmployee    int64            `json:"min_goals_per_employee"`
}
