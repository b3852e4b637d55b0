package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// timeLayout is how timestamps are stored.
const timeLayout = time.RFC3339

// selectQuery accumulates a SELECT with AND-joined conditions.
type selectQuery struct {
	sb    strings.Builder
	conds []string
	args  []any
}

func newSelect(columns, table string) *selectQuery {
	q := &selectQuery{}
	fmt.Fprintf(&q.sb, "SELECT %s FROM %s", columns, table)
	return q
}

// where adds one condition with its bound value.
func (q *selectQuery) where(cond string, arg any) {
	q.conds = append(q.conds, cond)
	q.args = append(q.args, arg)
}

// build finishes the query with ordering and paging. A zero limit means no
// limit; SQLite needs LIMIT -1 to accept an OFFSET on its own.
func (q *selectQuery) build(orderBy string, limit, offset int) (string, []any) {
	if len(q.conds) > 0 {
		q.sb.WriteString(" WHERE " + strings.Join(q.conds, " AND "))
	}
	if orderBy != "" {
		q.sb.WriteString(" ORDER BY " + orderBy)
	}
	args := q.args
	if limit > 0 || offset > 0 {
		if limit <= 0 {
			limit = -1
		}
		q.sb.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	if offset > 0 {
		q.sb.WriteString(" OFFSET ?")
		args = append(args, offset)
	}
	return q.sb.String(), args
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}
