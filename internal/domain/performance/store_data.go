package performance

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/m-mizutani/goerr/v2"

	"perftrack/internal/platform/querier"
)

type Store struct {
	dialect goqu.DialectWrapper
}

func NewStore(dialect goqu.DialectWrapper) *Store {
	return &Store{dialect: dialect}
}

func (s *Store) ListEmployees(ctx context.Context, q querier.Querier) ([]Employee, error) {
	query, args, err := s.dialect.From(tableEmployees).
		Select("employee_id", "name").
		Order(goqu.C("name").Asc(), goqu.C("employee_id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build employee query")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query employees")
	}
	defer rows.Close()

	employees := []Employee{}
	for rows.Next() {
		var employee Employee
		if err := rows.Scan(&employee.ID, &employee.Name); err != nil {
			return nil, goerr.Wrap(err, "failed to scan employee")
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read employees")
	}
	return employees, nil
}

func (s *Store) InsertGoal(ctx context.Context, q querier.Querier, goal Goal) error {
	query, args, err := s.dialect.Insert(tableGoals).
		Rows(goqu.Record{
			"goal_id":     goal.ID,
			"employee_id": goal.EmployeeID,
			"title":       goal.Title,
			"description": goal.Description,
			"due_date":    goal.DueDate,
			"status":      goal.Status,
			"created_at":  goal.CreatedAt,
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return goerr.Wrap(err, "failed to build goal insert", goerr.V("goal_id", goal.ID))
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return goerr.Wrap(err, "failed to insert goal",
			goerr.V("goal_id", goal.ID),
			goerr.V("employee_id", goal.EmployeeID))
	}
	return nil
}

func (s *Store) ListGoals(ctx context.Context, q querier.Querier, filter GoalFilter) ([]Goal, error) {
	sortColumn, ok := filter.Sort.column()
	if !ok {
		return nil, goerr.Wrap(ErrInvalidSort, "refusing unmapped sort key", goerr.V("sort", string(filter.Sort)))
	}

	ds := s.dialect.From(tableGoals).
		Select("goal_id", "employee_id", "title", "description", "due_date", "status", "created_at")
	if filter.EmployeeID != "" {
		ds = ds.Where(goqu.C("employee_id").Eq(filter.EmployeeID))
	}
	if filter.Status != "" && filter.Status != StatusFilterAll {
		ds = ds.Where(goqu.C("status").Eq(filter.Status))
	}
	query, args, err := ds.
		Order(goqu.C(sortColumn).Asc(), goqu.C("goal_id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build goal query")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query goals", goerr.V("employee_id", filter.EmployeeID))
	}
	defer rows.Close()

	goals := []Goal{}
	for rows.Next() {
		var goal Goal
		if err := rows.Scan(&goal.ID, &goal.EmployeeID, &goal.Title, &goal.Description, &goal.DueDate, &goal.Status, &goal.CreatedAt); err != nil {
			return nil, goerr.Wrap(err, "failed to scan goal")
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read goals")
	}
	return goals, nil
}

func (s *Store) UpdateGoal(ctx context.Context, q querier.Querier, goalID string, update GoalUpdate) (int64, error) {
	query, args, err := s.dialect.Update(tableGoals).
		Set(goqu.Record{
			"title":       update.Title,
			"description": update.Description,
			"due_date":    update.DueDate,
			"status":      update.Status,
		}).
		Where(goqu.C("goal_id").Eq(goalID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to build goal update", goerr.V("goal_id", goalID))
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to update goal", goerr.V("goal_id", goalID))
	}
	return rowsAffected(result), nil
}

func (s *Store) DeleteGoal(ctx context.Context, q querier.Querier, goalID string) (int64, error) {
	query, args, err := s.dialect.Delete(tableGoals).
		Where(goqu.C("goal_id").Eq(goalID)).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to build goal delete", goerr.V("goal_id", goalID))
	}

	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete goal", goerr.V("goal_id", goalID))
	}
	return rowsAffected(result), nil
}

func (s *Store) InsertFeedback(ctx context.Context, q querier.Querier, feedback Feedback) error {
	query, args, err := s.dialect.Insert(tableFeedback).
		Rows(goqu.Record{
			"feedback_id":      feedback.ID,
			"from_employee_id": feedback.FromEmployeeID,
			"to_employee_id":   feedback.ToEmployeeID,
			"feedback_text":    feedback.Text,
			"created_at":       feedback.CreatedAt,
		}).
		Prepared(true).
		ToSQL()
	if err != nil {
		return goerr.Wrap(err, "failed to build feedback insert", goerr.V("feedback_id", feedback.ID))
	}

	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return goerr.Wrap(err, "failed to insert feedback",
			goerr.V("feedback_id", feedback.ID),
			goerr.V("from_employee_id", feedback.FromEmployeeID),
			goerr.V("to_employee_id", feedback.ToEmployeeID))
	}
	return nil
}

func (s *Store) ListFeedbackFor(ctx context.Context, q querier.Querier, toEmployeeID string) ([]ReceivedFeedback, error) {
	query, args, err := s.dialect.From(goqu.T(tableFeedback).As("f")).
		Join(goqu.T(tableEmployees).As("e"), goqu.On(goqu.I("f.from_employee_id").Eq(goqu.I("e.employee_id")))).
		Select(
			goqu.I("f.feedback_id"),
			goqu.I("f.from_employee_id"),
			goqu.I("f.to_employee_id"),
			goqu.I("f.feedback_text"),
			goqu.I("f.created_at"),
			goqu.I("e.name").As("from_employee_name"),
		).
		Where(goqu.I("f.to_employee_id").Eq(toEmployeeID)).
		Order(goqu.I("f.created_at").Desc(), goqu.I("f.feedback_id").Asc()).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build feedback query")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query feedback", goerr.V("to_employee_id", toEmployeeID))
	}
	defer rows.Close()

	entries := []ReceivedFeedback{}
	for rows.Next() {
		var entry ReceivedFeedback
		if err := rows.Scan(&entry.ID, &entry.FromEmployeeID, &entry.ToEmployeeID, &entry.Text, &entry.CreatedAt, &entry.FromEmployeeName); err != nil {
			return nil, goerr.Wrap(err, "failed to scan feedback")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read feedback")
	}
	return entries, nil
}

func rowsAffected(result interface{ RowsAffected() (int64, error) }) int64 {
	n, err := result.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
