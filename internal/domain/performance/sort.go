package performance

import (
	"fmt"
	"strings"
)

type GoalSort string

const (
	SortByDueDate   GoalSort = "due_date"
	SortByCreatedAt GoalSort = "created_at"
	SortByTitle     GoalSort = "title"
	SortByStatus    GoalSort = "status"
)

// Sort keys are never interpolated; only columns from this table reach the
// ORDER BY clause.
var goalSortColumns = map[GoalSort]string{
	SortByDueDate:   "due_date",
	SortByCreatedAt: "created_at",
	SortByTitle:     "title",
	SortByStatus:    "status",
}

var GoalSortKeys = []GoalSort{SortByDueDate, SortByCreatedAt, SortByTitle, SortByStatus}

// ParseGoalSort maps a caller-supplied key to a GoalSort. Empty input selects
// the due date.
func ParseGoalSort(raw string) (GoalSort, error) {
	key := GoalSort(strings.ToLower(strings.TrimSpace(raw)))
	if key == "" {
		return SortByDueDate, nil
	}
	if _, ok := goalSortColumns[key]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, raw)
	}
	return key, nil
}

func (s GoalSort) column() (string, bool) {
	if s == "" {
		s = SortByDueDate
	}
	col, ok := goalSortColumns[s]
	return col, ok
}
