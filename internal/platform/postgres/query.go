package postgres

import (
	"fmt"
	"strings"
)

// Query accumulates positional arguments for hand-written SQL.
type Query struct {
	args []interface{}
}

// Arg appends v and returns its $n placeholder.
func (q *Query) Arg(v interface{}) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *Query) Args() []interface{} {
	return q.args
}

// Where collects AND-combined conditions.
type Where struct {
	*Query
	conds []string
}

func NewWhere(q *Query) *Where {
	return &Where{Query: q}
}

func (w *Where) Add(cond string) {
	w.conds = append(w.conds, cond)
}

// ILike adds an OR group matching term case-insensitively against every column.
func (w *Where) ILike(term string, columns ...string) {
	if term == "" || len(columns) == 0 {
		return
	}
	ph := w.Arg("%" + EscapeLike(term) + "%")
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("%s ILIKE %s", col, ph)
	}
	w.Add("(" + strings.Join(parts, " OR ") + ")")
}

func (w *Where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(w.conds, " AND ")
}

// Set collects column assignments for a partial UPDATE.
type Set struct {
	*Query
	sets []string
}

func NewSet(q *Query) *Set {
	return &Set{Query: q}
}

func (s *Set) Add(column string, v interface{}) {
	s.sets = append(s.sets, fmt.Sprintf("%s = %s", column, s.Arg(v)))
}

func (s *Set) Empty() bool {
	return len(s.sets) == 0
}

// String renders the assignments with updated_at bumped.
func (s *Set) String() string {
	return strings.Join(append(s.sets, "updated_at = NOW()"), ", ")
}
