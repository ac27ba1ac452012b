package domain

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// Role is the closed set of administrative roles a principal can hold.
type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RoleEstateManager Role = "ESTATE_MANAGER"
)

// ParseRole normalizes a raw role name. Unknown names return false.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleSuperAdmin:
		return RoleSuperAdmin, true
	case RoleEstateManager:
		return RoleEstateManager, true
	default:
		return "", false
	}
}

// Principal is an already-authenticated actor. EstateID is only meaningful for
// estate managers.
type Principal struct {
	ID       snowflake.ID  `json:"id"`
	Role     Role          `json:"role"`
	EstateID *snowflake.ID `json:"estate_id,omitempty"`
}

func NewSuperAdmin(id snowflake.ID) Principal {
	return Principal{ID: id, Role: RoleSuperAdmin}
}

func NewEstateManager(id, estateID snowflake.ID) Principal {
	return Principal{ID: id, Role: RoleEstateManager, EstateID: &estateID}
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

func (p Principal) IsEstateManager() bool {
	return p.Role == RoleEstateManager
}

// Subject is the casbin subject for the principal's role.
func (p Principal) Subject() string {
	return "role:" + strings.ToLower(string(p.Role))
}

func (p Principal) String() string {
	if p.EstateID != nil {
		return fmt.Sprintf("%s:%s@%s", strings.ToLower(string(p.Role)), p.ID, p.EstateID.String())
	}
	return fmt.Sprintf("%s:%s", strings.ToLower(string(p.Role)), p.ID)
}
