package performance

import (
	"context"
	"time"

	"perftrack/internal/platform/querier"
)

func (s *Service) ListEmployees(ctx context.Context) []Employee {
	var employees []Employee
	err := s.read(ctx, func(q querier.Querier) error {
		var err error
		employees, err = s.store.ListEmployees(ctx, q)
		return err
	})
	if !s.finish(ctx, opListEmployees, err) {
		return []Employee{}
	}
	return employees
}

// AddGoal stores a new goal under a freshly generated id and returns that id.
func (s *Service) AddGoal(ctx context.Context, in NewGoal) (string, bool) {
	goal := Goal{
		ID:          s.newID(),
		EmployeeID:  in.EmployeeID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     dateOnly(in.DueDate),
		Status:      in.Status,
		CreatedAt:   s.now().UTC(),
	}
	err := s.write(ctx, func(q querier.Querier) error {
		return s.store.InsertGoal(ctx, q, goal)
	})
	if !s.finish(ctx, opAddGoal, err, "employee_id", in.EmployeeID) {
		return "", false
	}
	return goal.ID, true
}

// ListGoals filters by employee when EmployeeID is set and by status unless it
// is empty or StatusFilterAll. Results are ordered ascending by filter.Sort.
func (s *Service) ListGoals(ctx context.Context, filter GoalFilter) []Goal {
	var goals []Goal
	err := s.read(ctx, func(q querier.Querier) error {
		var err error
		goals, err = s.store.ListGoals(ctx, q, filter)
		return err
	})
	if !s.finish(ctx, opListGoals, err, "employee_id", filter.EmployeeID, "status", filter.Status, "sort", string(filter.Sort)) {
		return []Goal{}
	}
	return goals
}

// UpdateGoal replaces every mutable field. Updating an unknown id is not an
// error.
func (s *Service) UpdateGoal(ctx context.Context, goalID string, update GoalUpdate) bool {
	update.DueDate = dateOnly(update.DueDate)
	err := s.write(ctx, func(q querier.Querier) error {
		_, err := s.store.UpdateGoal(ctx, q, goalID, update)
		return err
	})
	return s.finish(ctx, opUpdateGoal, err, "goal_id", goalID)
}

// DeleteGoal is idempotent: deleting an unknown id reports success.
func (s *Service) DeleteGoal(ctx context.Context, goalID string) bool {
	err := s.write(ctx, func(q querier.Querier) error {
		_, err := s.store.DeleteGoal(ctx, q, goalID)
		return err
	})
	return s.finish(ctx, opDeleteGoal, err, "goal_id", goalID)
}

// AddFeedback stores an immutable note timestamped with the service clock.
func (s *Service) AddFeedback(ctx context.Context, fromEmployeeID, toEmployeeID, text string) (string, bool) {
	feedback := Feedback{
		ID:             s.newID(),
		FromEmployeeID: fromEmployeeID,
		ToEmployeeID:   toEmployeeID,
		Text:           text,
		CreatedAt:      s.now().UTC(),
	}
	err := s.write(ctx, func(q querier.Querier) error {
		return s.store.InsertFeedback(ctx, q, feedback)
	})
	if !s.finish(ctx, opAddFeedback, err, "from_employee_id", fromEmployeeID, "to_employee_id", toEmployeeID) {
		return "", false
	}
	return feedback.ID, true
}

// ListFeedback returns feedback addressed to toEmployeeID, newest first.
func (s *Service) ListFeedback(ctx context.Context, toEmployeeID string) []ReceivedFeedback {
	var entries []ReceivedFeedback
	err := s.read(ctx, func(q querier.Querier) error {
		var err error
		entries, err = s.store.ListFeedbackFor(ctx, q, toEmployeeID)
		return err
	})
	if !s.finish(ctx, opListFeedback, err, "to_employee_id", toEmployeeID) {
		return []ReceivedFeedback{}
	}
	return entries
}

type insightCounts struct {
	goals     int64
	employees int64
	feedback  int64
	byStatus  map[string]int64
	maxGoals  int64
	minGoals  int64
}

// Insights recomputes every metric from the tables. The queries share one
// connection but no transaction.
func (s *Service) Insights(ctx context.Context) Insights {
	var counts insightCounts
	err := s.read(ctx, func(q querier.Querier) error {
		var err error
		if counts.goals, err = s.store.CountGoals(ctx, q); err != nil {
			return err
		}
		if counts.employees, err = s.store.CountEmployees(ctx, q); err != nil {
			return err
		}
		if counts.byStatus, err = s.store.GoalCountsByStatus(ctx, q); err != nil {
			return err
		}
		if counts.feedback, err = s.store.CountFeedback(ctx, q); err != nil {
			return err
		}
		if counts.maxGoals, err = s.store.MaxGoalsPerEmployee(ctx, q); err != nil {
			return err
		}
		counts.minGoals, err = s.store.MinGoalsPerEmployee(ctx, q)
		return err
	})
	if !s.finish(ctx, opInsights, err) {
		return Insights{GoalsByStatus: map[string]int64{}}
	}
	return buildInsights(counts)
}

func buildInsights(counts insightCounts) Insights {
	insights := Insights{
		TotalGoals:          counts.goals,
		TotalEmployees:      counts.employees,
		GoalsByStatus:       counts.byStatus,
		MaxGoalsPerEmployee: counts.maxGoals,
		MinGoalsPerEmployee: counts.minGoals,
	}
	if insights.GoalsByStatus == nil {
		insights.GoalsByStatus = map[string]int64{}
	}
	if counts.employees > 0 {
		insights.AvgGoalsPerEmployee = float64(counts.goals) / float64(counts.employees)
		insights.AvgFeedbackPerEmployee = float64(counts.feedback) / float64(counts.employees)
	}
	return insights
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
