package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	retryablehttp "github.com/hashicorp/go-retryablehttp"
	"github.com/curiohq/curio/lib/env"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/svc"
)

// Credentials are the credentials used by the client to authenticate
// against a market.
type Credentials struct {
	Host     string `json:"host"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Client expose an interface to interact with a market over its HTTP API.
type Client struct {
	Credentials *Credentials
	httpClient  *http.Client
}

// NewClient constructs a new client for the provided credentials. Requests
// are retried on transient transport failures.
func NewClient(
	ctx context.Context,
	creds *Credentials,
) *Client {
	r := retryablehttp.NewClient()
	r.RetryMax = 3
	r.Logger = nil

	return &Client{
		Credentials: creds,
		httpClient:  r.StandardClient(),
	}
}

// scheme returns the scheme to use to contact a market based on the current
// environment (TLS termination is expected to happen in front of the market
// in production).
func scheme(
	ctx context.Context,
) string {
	if env.Get(ctx).Environment == env.Production {
		return "https"
	}
	return "http"
}

func (c *Client) do(
	ctx context.Context,
	req *http.Request,
) (*int, svc.Resp, error) {
	if c.Credentials.Username != "" {
		req.SetBasicAuth(c.Credentials.Username, c.Credentials.Password)
	}

	r, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	defer r.Body.Close()

	var raw svc.Resp
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, nil, errors.Trace(err)
	}

	return &r.StatusCode, raw, nil
}

// Get performs a GET request against the market.
func (c *Client) Get(
	ctx context.Context,
	path string,
) (*int, svc.Resp, error) {
	req, err := http.NewRequest("GET",
		fmt.Sprintf("%s://%s%s", scheme(ctx), c.Credentials.Host, path), nil)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	return c.do(ctx, req.WithContext(ctx))
}

// Post performs a POST request against the market with the provided form
// values.
func (c *Client) Post(
	ctx context.Context,
	path string,
	values url.Values,
) (*int, svc.Resp, error) {
	req, err := http.NewRequest("POST",
		fmt.Sprintf("%s://%s%s", scheme(ctx), c.Credentials.Host, path),
		strings.NewReader(values.Encode()))
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(ctx, req.WithContext(ctx))
}

// ClientError extracts an ErrMarketClient from an API error response,
// returning nil if none is found.
func ClientError(
	status *int,
	raw svc.Resp,
) error {
	if status == nil || *status < 400 {
		return nil
	}
	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		return errors.Trace(err)
	}
	return errors.Trace(ErrMarketClient{
		StatusCode: *status,
		ErrCode:    e.ErrCode,
		ErrMessage: e.ErrMessage,
	})
}
