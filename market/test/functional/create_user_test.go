package functional

import (
	"net/url"
	"testing"
	"time"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/token"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/test"
	"github.com/stretchr/testify/assert"
)

func TestCreateUserSimple(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	username := token.New("user")
	u := &test.MarketUser{
		Market:   m,
		Username: username,
		Password: token.New("password"),
	}

	status, raw := u.Post(t,
		"/users",
		url.Values{
			"username": {u.Username},
			"password": {u.Password},
		})

	var user market.UserResource
	err := raw.Extract("user", &user)
	assert.Nil(t, err)

	assert.Equal(t, 201, status)
	assert.Equal(t, username, user.Username)
	assert.WithinDuration(t,
		time.Now(),
		time.Unix(0, user.Created*market.TimeResolutionNs), test.PostLatency)
}

func TestCreateUserWithTakenUsername(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()
	u := m.CreateUser(t)

	status, raw := u.Post(t,
		"/users",
		url.Values{
			"username": {u.Username},
			"password": {"anotherpassword"},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "username_taken", e.ErrCode)
}

func TestCreateUserWithInvalidUsername(
	t *testing.T,
) {
	t.Parallel()
	m := test.CreateMarket(t)
	defer m.Close()

	u := &test.MarketUser{
		Market:   m,
		Username: "Not A Valid Username",
		Password: "apassword",
	}

	status, raw := u.Post(t,
		"/users",
		url.Values{
			"username": {u.Username},
			"password": {u.Password},
		})

	var e errors.ConcreteUserError
	err := raw.Extract("error", &e)
	assert.Nil(t, err)

	assert.Equal(t, 400, status)
	assert.Equal(t, "username_invalid", e.ErrCode)
}
