package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// uniqueViolations are the driver messages for a unique index hit, for
// dialects whose errors gorm does not translate.
var uniqueViolations = []string{
	"duplicate key value violates unique constraint", // postgres 23505
	"Error 1062",               // mysql
	"UNIQUE constraint failed", // sqlite
}

// IsDuplicateKeyErr reports whether err is a unique index violation.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, marker := range uniqueViolations {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
