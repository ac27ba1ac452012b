// Package scope computes the set of estates a principal may act upon.
package scope

import (
	"errors"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
)

var (
	// ErrMissingAffiliation means an estate manager has no estate bound. This is
	// corrupted principal data and is never retried.
	ErrMissingAffiliation = errors.New("missing_affiliation")
	ErrUnknownRole        = errors.New("unknown_role")
)

// Set is either unrestricted or a single estate.
type Set struct {
	unrestricted bool
	estateID     snowflake.ID
}

func Unrestricted() Set {
	return Set{unrestricted: true}
}

func Single(estateID snowflake.ID) Set {
	return Set{estateID: estateID}
}

func (s Set) IsUnrestricted() bool {
	return s.unrestricted
}

// EstateID returns the bound estate of a singleton scope.
func (s Set) EstateID() (snowflake.ID, bool) {
	if s.unrestricted || s.estateID == 0 {
		return 0, false
	}
	return s.estateID, true
}

// Contains reports whether estateID is inside the scope. The zero ID is never
// contained by a singleton scope.
func (s Set) Contains(estateID snowflake.ID) bool {
	if s.unrestricted {
		return true
	}
	return s.estateID != 0 && s.estateID == estateID
}

// Resolve derives the scope from the principal alone.
func Resolve(p identity.Principal) (Set, error) {
	switch p.Role {
	case identity.RoleSuperAdmin:
		return Unrestricted(), nil
	case identity.RoleEstateManager:
		if p.EstateID == nil || *p.EstateID == 0 {
			return Set{}, ErrMissingAffiliation
		}
		return Single(*p.EstateID), nil
	default:
		return Set{}, ErrUnknownRole
	}
}
