package authorization

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estatehub/internal/scope"
	"gorm.io/gorm"
)

// Predicate restricts a query to estate_id ∈ scope. It implements
// repository.Scope.
type Predicate struct {
	set scope.Set
}

// EstatePredicate narrows to one estate. Use it only after the estate has
// been authorized.
func EstatePredicate(estateID snowflake.ID) Predicate {
	return Predicate{set: scope.Single(estateID)}
}

func (p Predicate) Apply(db *gorm.DB, column string) *gorm.DB {
	if p.set.IsUnrestricted() {
		return db
	}
	estateID, ok := p.set.EstateID()
	if !ok {
		return db.Where("1 = 0")
	}
	return db.Where(column+" = ?", estateID)
}

func (p Predicate) Matches(estateID snowflake.ID) bool {
	return p.set.Contains(estateID)
}

func (p Predicate) IsUnrestricted() bool {
	return p.set.IsUnrestricted()
}
