package repository

import (
	"fmt"
	"strings"
)

// setClause collects SET fragments for partial updates. Only fields the
// caller actually submitted end up in the statement.
type setClause struct {
	cols []string
	args []interface{}
}

func (s *setClause) add(column string, value interface{}) {
	s.cols = append(s.cols, fmt.Sprintf("%s = ?", column))
	s.args = append(s.args, value)
}

func (s *setClause) empty() bool {
	return len(s.cols) == 0
}

func (s *setClause) sql() string {
	return strings.Join(s.cols, ", ")
}

// prefixColumns qualifies a comma-separated column list with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
