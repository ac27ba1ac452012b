package scope

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSuperAdminIsUnrestricted(t *testing.T) {
	estateID := snowflake.ID(99)
	p := identity.Principal{ID: 1, Role: identity.RoleSuperAdmin, EstateID: &estateID}

	set, err := Resolve(p)
	require.NoError(t, err)
	assert.True(t, set.IsUnrestricted())
	assert.True(t, set.Contains(99))
	assert.True(t, set.Contains(12345))

	_, ok := set.EstateID()
	assert.False(t, ok, "super admin estate binding is ignored")
}

func TestResolveEstateManagerIsSingleton(t *testing.T) {
	set, err := Resolve(identity.NewEstateManager(1, 42))
	require.NoError(t, err)

	assert.False(t, set.IsUnrestricted())
	id, ok := set.EstateID()
	require.True(t, ok)
	assert.Equal(t, snowflake.ID(42), id)
	assert.True(t, set.Contains(42))
	assert.False(t, set.Contains(43))
	assert.False(t, set.Contains(0))
}

func TestResolveEstateManagerWithoutEstate(t *testing.T) {
	zero := snowflake.ID(0)
	cases := map[string]identity.Principal{
		"nil estate":  {ID: 1, Role: identity.RoleEstateManager},
		"zero estate": {ID: 1, Role: identity.RoleEstateManager, EstateID: &zero},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Resolve(p)
			assert.ErrorIs(t, err, ErrMissingAffiliation)
		})
	}
}

func TestResolveUnknownRoleFailsClosed(t *testing.T) {
	_, err := Resolve(identity.Principal{ID: 1, Role: "TENANT"})
	assert.ErrorIs(t, err, ErrUnknownRole)
}
