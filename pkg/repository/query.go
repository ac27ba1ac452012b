package repository

import (
	"strings"

	"gorm.io/gorm"
)

// Scope narrows a query to the rows a caller may see. It is applied before any
// caller-supplied condition.
type Scope interface {
	Apply(db *gorm.DB, column string) *gorm.DB
}

// Condition is a caller-supplied filter ANDed after the scope.
type Condition func(db *gorm.DB) *gorm.DB

// Query describes a list request.
type Query struct {
	Conditions []Condition
	// OrderBy is a field name from the entity's allow-list, optionally prefixed
	// with "-" for descending order. Empty means creation order.
	OrderBy string
	Limit   int
}

// Where builds an equality-or-expression condition.
func Where(expr string, args ...any) Condition {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(expr, args...)
	}
}

// Search builds a case-insensitive LIKE across the given columns.
func Search(term string, columns ...string) Condition {
	term = strings.TrimSpace(term)
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		like := "%" + strings.ToLower(term) + "%"
		clauses := make([]string, 0, len(columns))
		args := make([]any, 0, len(columns))
		for _, column := range columns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, like)
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// Ordering maps public field names to columns.
type Ordering map[string]string

const defaultOrder = "created_at ASC, id ASC"

// Resolve turns a requested ordering into an ORDER BY clause. Unknown fields
// are rejected.
func (o Ordering) Resolve(requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return defaultOrder, nil
	}

	direction := "ASC"
	field := requested
	if strings.HasPrefix(field, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(field, "-")
	}

	column, ok := o[strings.ToLower(field)]
	if !ok || column == "" {
		return "", NewValidationError("ordering", "invalid_ordering")
	}
	return column + " " + direction + ", id " + direction, nil
}
