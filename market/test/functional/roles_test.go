package functional

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/test"
	"github.com/stretchr/testify/assert"
)

func TestGrantRoleSimple(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, raw := m.Operator.Post(t,
		"/roles",
		url.Values{
			"username": {u.Username},
			"role":     {"minter"},
		})

	var role market.RoleResource
	err := raw.Extract("role", &role)
	assert.Nil(t, err)

	assert.Equal(t, 201, status)
	assert.Equal(t, market.RoMinter, role.Role)
	assert.Equal(t, u.Username, role.Username)
	assert.True(t, role.Held)
}

func TestGrantRoleIsIdempotent(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, _ := m.Operator.Post(t,
		"/roles",
		url.Values{
			"username": {u.Username},
			"role":     {"minter"},
		})
	assert.Equal(t, 201, status)

	status, raw := m.Operator.Post(t,
		"/roles",
		url.Values{
			"username": {u.Username},
			"role":     {"minter"},
		})

	var role market.RoleResource
	err := raw.Extract("role", &role)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.True(t, role.Held)
}

func TestGrantRoleWithoutAdminRole(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, raw := u.Post(t,
		"/roles",
		url.Values{
			"username": {u.Username},
			"role":     {"minter"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "unauthorized", e.ErrCode)
	assert.Equal(t,
		fmt.Sprintf("AccessControl: account %s is missing role admin.",
			u.Username),
		e.ErrMessage)
}

func TestRevokeRoleSimple(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)
	m.Grant(t, u, market.RoMinter)

	status, raw := m.Operator.Post(t,
		"/roles/revoke",
		url.Values{
			"username": {u.Username},
			"role":     {"minter"},
		})

	var role market.RoleResource
	err := raw.Extract("role", &role)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.False(t, role.Held)

	// The revoked user can no longer mint.
	status, raw = u.Post(t,
		"/items",
		url.Values{
			"uri":         {"ipfs://QmTest0"},
			"royalty_bps": {"0"},
		})

	var e errors.ConcreteUserError
	err = raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "unauthorized", e.ErrCode)
}

func TestRevokeRoleIsIdempotent(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, raw := m.Operator.Post(t,
		"/roles/revoke",
		url.Values{
			"username": {u.Username},
			"role":     {"minter"},
		})

	var role market.RoleResource
	err := raw.Extract("role", &role)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.False(t, role.Held)
}

func TestRetrieveRole(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, raw := u.Get(t,
		fmt.Sprintf("/roles/minter/%s", u.Username))

	var role market.RoleResource
	err := raw.Extract("role", &role)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.False(t, role.Held)

	m.Grant(t, u, market.RoMinter)

	status, raw = u.Get(t,
		fmt.Sprintf("/roles/minter/%s", u.Username))

	err = raw.Extract("role", &role)
	assert.Nil(t, err)

	assert.Equal(t, 200, status)
	assert.True(t, role.Held)
}
