package performance

import (
	"context"

	"perftrack/internal/platform/querier"
)

type StoreAPI interface {
	ListEmployees(ctx context.Context, q querier.Querier) ([]Employee, error)
	InsertGoal(ctx context.Context, q querier.Querier, goal Goal) error
	ListGoals(ctx context.Context, q querier.Querier, filter GoalFilter) ([]Goal, error)
	UpdateGoal(ctx context.Context, q querier.Querier, goalID string, update GoalUpdate) (int64, error)
	DeleteGoal(ctx context.Context, q querier.Querier, goalID string) (int64, error)
	InsertFeedback(ctx context.Context, q querier.Querier, feedback Feedback) error
	ListFeedbackFor(ctx context.Context, q querier.Querier, toEmployeeID string) ([]ReceivedFeedback, error)
	CountGoals(ctx context.Context, q querier.Querier) (int64, error)
	CountEmployees(ctx context.Context, q querier.Querier) (int64, error)
	CountFeedback(ctx context.Context, q querier.Querier) (int64, error)
	GoalCountsByStatus(ctx context.Context, q querier.Querier) (map[string]int64, error)
	MaxGoalsPerEmployee(ctx context.Context, q querier.Querier) (int64, error)
	MinGoalsPerEmployee(ctx context.Context, q querier.Querier) (int64, error)
}

var _ StoreAPI = (*Store)(nil)
