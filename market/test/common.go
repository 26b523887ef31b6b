package test

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math/big"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/curiohq/curio/lib/db"
	"github.com/curiohq/curio/lib/env"
	"github.com/curiohq/curio/lib/recoverer"
	"github.com/curiohq/curio/lib/requestlogger"
	"github.com/curiohq/curio/lib/svc"
	"github.com/curiohq/curio/lib/token"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/app"
	"github.com/curiohq/curio/market/lib/authentication"
	"github.com/curiohq/curio/market/model"
	goji "goji.io"

	// force initialization of schemas
	_ "github.com/curiohq/curio/market/model/schemas"
)

// PostLatency is the expected latency on post requests.
var PostLatency = 200 * time.Millisecond

// GetLatency is the expected latency on get requests.
var GetLatency = 100 * time.Millisecond

// Market represents a test marketplace backed by an in-memory DB, along
// with the operator user created at initialization (which holds the admin
// and minter roles and acts as the marketplace wallet).
type Market struct {
	Server   *httptest.Server
	Ctx      context.Context
	Operator *MarketUser
}

// MarketUser represents a user of a test marketplace.
type MarketUser struct {
	Market   *Market
	Username string
	Password string
}

// CreateMarket creates a new test marketplace with an in-memory DB, zero
// listing fee and zero sale fee.
func CreateMarket(
	t *testing.T,
) *Market {
	ctx := context.Background()

	marketEnv := env.Env{
		Environment: env.QA,
		Config:      map[env.ConfigKey]string{},
	}
	ctx = env.With(ctx, &marketEnv)

	marketDB, err := db.NewSqlite3DBInMemory(ctx)
	if err != nil {
		t.Fatal(err)
	}
	err = db.CreateDBTables(ctx, "market", marketDB)
	if err != nil {
		t.Fatal(err)
	}
	ctx = db.WithDB(ctx, marketDB)

	mux := goji.NewMux()
	mux.Use(requestlogger.Middleware)
	mux.Use(recoverer.Middleware)
	mux.Use(db.Middleware(db.GetDB(ctx)))
	mux.Use(env.Middleware(env.Get(ctx)))
	mux.Use(authentication.Middleware)

	(&app.Controller{}).Bind(mux)

	m := &Market{
		Server: httptest.NewServer(mux),
		Ctx:    ctx,
	}

	operator := &MarketUser{
		Market:   m,
		Username: token.New("operator"),
		Password: token.New("password"),
	}
	user, err := model.CreateUser(ctx, operator.Username, operator.Password)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []market.RoName{market.RoAdmin, market.RoMinter} {
		if _, err := model.CreateRole(ctx, user.Username, name); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := model.CreateParameters(ctx,
		model.Amount{}, 0, user.Username); err != nil {
		t.Fatal(err)
	}
	m.Operator = operator

	return m
}

// Close shuts the test marketplace down.
func (m *Market) Close() {
	m.Server.Close()
}

// CreateUser creates a new user through the public registration endpoint.
func (m *Market) CreateUser(
	t *testing.T,
) *MarketUser {
	u := &MarketUser{
		Market:   m,
		Username: token.New("user"),
		Password: token.New("password"),
	}

	status, _ := u.Post(t, "/users", url.Values{
		"username": {u.Username},
		"password": {u.Password},
	})
	if status != 201 {
		t.Fatalf("Failed to create user: status=%d", status)
	}

	return u
}

// Grant grants a role to the user, acting as the marketplace operator.
func (m *Market) Grant(
	t *testing.T,
	u *MarketUser,
	role market.RoName,
) {
	status, _ := m.Operator.Post(t, "/roles", url.Values{
		"username": {u.Username},
		"role":     {string(role)},
	})
	if status != 201 && status != 200 {
		t.Fatalf("Failed to grant role: status=%d", status)
	}
}

// SetParameters updates the marketplace parameters, acting as the operator
// (who remains the marketplace wallet).
func (m *Market) SetParameters(
	t *testing.T,
	listingFee *big.Int,
	feeBps int64,
) {
	status, _ := m.Operator.Post(t, "/parameters", url.Values{
		"listing_fee": {listingFee.String()},
		"fee_bps":     {fmt.Sprintf("%d", feeBps)},
		"wallet":      {m.Operator.Username},
	})
	if status != 200 {
		t.Fatalf("Failed to set parameters: status=%d", status)
	}
}

// Deposit credits the user's escrow balance.
func (u *MarketUser) Deposit(
	t *testing.T,
	amount *big.Int,
) {
	status, _ := u.Post(t, "/deposits", url.Values{
		"amount": {amount.String()},
	})
	if status != 201 {
		t.Fatalf("Failed to deposit: status=%d", status)
	}
}

// Mint mints a new item as the user (who must hold the minter role) and
// returns its resource.
func (u *MarketUser) Mint(
	t *testing.T,
	uri string,
	royaltyBps int64,
) market.ItemResource {
	status, raw := u.Post(t, "/items", url.Values{
		"uri":         {uri},
		"royalty_bps": {fmt.Sprintf("%d", royaltyBps)},
	})
	if status != 201 {
		t.Fatalf("Failed to mint item: status=%d", status)
	}

	var item market.ItemResource
	if err := raw.Extract("item", &item); err != nil {
		t.Fatal(err)
	}
	return item
}

// Balance retrieves the user's own balance value.
func (u *MarketUser) Balance(
	t *testing.T,
) *big.Int {
	status, raw := u.Get(t, fmt.Sprintf("/balances/%s", u.Username))
	if status != 200 {
		t.Fatalf("Failed to retrieve balance: status=%d", status)
	}

	var balance market.BalanceResource
	if err := raw.Extract("balance", &balance); err != nil {
		t.Fatal(err)
	}
	return balance.Value
}

// Post posts the given form to the test marketplace as the user.
func (u *MarketUser) Post(
	t *testing.T,
	path string,
	values url.Values,
) (int, svc.Resp) {
	req, err := http.NewRequest("POST",
		u.Market.Server.URL+path,
		strings.NewReader(values.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(u.Username, u.Password)

	return execute(t, req)
}

// Get performs a GET request on the test marketplace as the user.
func (u *MarketUser) Get(
	t *testing.T,
	path string,
) (int, svc.Resp) {
	req, err := http.NewRequest("GET",
		u.Market.Server.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	req.SetBasicAuth(u.Username, u.Password)

	return execute(t, req)
}

func execute(
	t *testing.T,
	req *http.Request,
) (int, svc.Resp) {
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Body.Close()

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		t.Fatal(err)
	}

	var raw svc.Resp
	if err := json.Unmarshal(body, &raw); err != nil {
		t.Fatalf("Failed to parse response: %s", string(body))
	}

	return r.StatusCode, raw
}
