package performance

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/m-mizutani/goerr/v2"

	"perftrack/internal/platform/querier"
)

func (s *Store) CountGoals(ctx context.Context, q querier.Querier) (int64, error) {
	return s.countRows(ctx, q, tableGoals)
}

func (s *Store) CountEmployees(ctx context.Context, q querier.Querier) (int64, error) {
	return s.countRows(ctx, q, tableEmployees)
}

func (s *Store) CountFeedback(ctx context.Context, q querier.Querier) (int64, error) {
	return s.countRows(ctx, q, tableFeedback)
}

func (s *Store) GoalCountsByStatus(ctx context.Context, q querier.Querier) (map[string]int64, error) {
	query, args, err := s.dialect.From(tableGoals).
		Select(goqu.C("status"), goqu.COUNT(goqu.Star()).As("goal_count")).
		GroupBy(goqu.C("status")).
		Prepared(true).
		ToSQL()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build status breakdown query")
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query status breakdown")
	}
	defer rows.Close()

	counts := map[string]int64{}
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, goerr.Wrap(err, "failed to scan status breakdown")
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to read status breakdown")
	}
	return counts, nil
}

// MaxGoalsPerEmployee only considers employees owning at least one goal and
// returns 0 when no goal exists.
func (s *Store) MaxGoalsPerEmployee(ctx context.Context, q querier.Querier) (int64, error) {
	return s.goalCountExtreme(ctx, q, goqu.MAX("goal_count"))
}

// MinGoalsPerEmployee only considers employees owning at least one goal and
// returns 0 when no goal exists.
func (s *Store) MinGoalsPerEmployee(ctx context.Context, q querier.Querier) (int64, error) {
	return s.goalCountExtreme(ctx, q, goqu.MIN("goal_count"))
}

func (s *Store) goalCountExtreme(ctx context.Context, q querier.Querier, agg exp.SQLFunctionExpression) (int64, error) {
	perEmployee := s.dialect.From(tableGoals).
		Select(goqu.COUNT(goqu.Star()).As("goal_count")).
		GroupBy(goqu.C("employee_id"))

	query, args, err := s.dialect.From(perEmployee.As("per_employee")).
		Select(agg).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to build goal count query", goerr.V("aggregate", agg.Name()))
	}

	var value sql.NullInt64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&value); err != nil {
		return 0, goerr.Wrap(err, "failed to query goal count", goerr.V("aggregate", agg.Name()))
	}
	if !value.Valid {
		return 0, nil
	}
	return value.Int64, nil
}

func (s *Store) countRows(ctx context.Context, q querier.Querier, table string) (int64, error) {
	query, args, err := s.dialect.From(table).
		Select(goqu.COUNT(goqu.Star())).
		Prepared(true).
		ToSQL()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to build count query", goerr.V("table", table))
	}

	var count int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, goerr.Wrap(err, "failed to count rows", goerr.V("table", table))
	}
	return count, nil
}
