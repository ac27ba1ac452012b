package authorization

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

//go:embed model.conf
var modelText string

// NewEnforcer builds the role policy enforcer over the casbin_rule table and
// makes sure the default role policy is present.
func NewEnforcer(db *gorm.DB) (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("policy model: %w", err)
	}
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("policy adapter: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("policy enforcer: %w", err)
	}
	if err := SeedPolicies(enforcer); err != nil {
		return nil, fmt.Errorf("seed policies: %w", err)
	}
	return enforcer, nil
}

// SeedPolicies adds the default rules that are missing, in one batch. Rules
// added by operators are kept.
func SeedPolicies(enforcer *casbin.SyncedEnforcer) error {
	var missing [][]string
	for _, rule := range defaultPolicies() {
		has, err := enforcer.HasPolicy(rule)
		if err != nil {
			return err
		}
		if !has {
			missing = append(missing, rule)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	_, err := enforcer.AddPolicies(missing)
	return err
}
