package command

import (
	"context"
	"fmt"
	"net/http"

	"github.com/curiohq/curio/cli"
	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/lib/svc"
	"github.com/curiohq/curio/market"
)

// apiError converts a non-2xx API response into a human-friendly error.
func apiError(
	status *int,
	raw svc.Resp,
) error {
	var e errors.ConcreteUserError
	if err := raw.Extract("error", &e); err != nil {
		return errors.Trace(errors.Newf("Unexpected response (%d)", *status))
	}
	return errors.Trace(errors.Newf("(%s) %s", e.ErrCode, e.ErrMessage))
}

// RetrieveParameters retrieves the marketplace parameters.
func RetrieveParameters(
	ctx context.Context,
) (*market.ParametersResource, error) {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	status, raw, err := m.Get(ctx, "/parameters")
	if err != nil {
		return nil, errors.Trace(err)
	}
	if *status != http.StatusOK {
		return nil, apiError(status, raw)
	}

	var parameters market.ParametersResource
	if err := raw.Extract("parameters", &parameters); err != nil {
		return nil, errors.Trace(err)
	}

	return &parameters, nil
}

// RetrieveItem retrieves an item.
func RetrieveItem(
	ctx context.Context,
	id int64,
) (*market.ItemResource, error) {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	status, raw, err := m.Get(ctx, fmt.Sprintf("/items/%d", id))
	if err != nil {
		return nil, errors.Trace(err)
	}
	if *status != http.StatusOK {
		return nil, apiError(status, raw)
	}

	var item market.ItemResource
	if err := raw.Extract("item", &item); err != nil {
		return nil, errors.Trace(err)
	}

	return &item, nil
}

// RetrieveListing retrieves the latest listing of an item, returning nil if
// the item was never listed.
func RetrieveListing(
	ctx context.Context,
	id int64,
) (*market.ListingResource, error) {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	status, raw, err := m.Get(ctx, fmt.Sprintf("/items/%d/listing", id))
	if err != nil {
		return nil, errors.Trace(err)
	}
	if *status != http.StatusOK {
		return nil, apiError(status, raw)
	}

	// A never-listed item returns a null listing.
	if raw["listing"] == nil || string(*raw["listing"]) == "null" {
		return nil, nil
	}

	var listing market.ListingResource
	if err := raw.Extract("listing", &listing); err != nil {
		return nil, errors.Trace(err)
	}

	return &listing, nil
}

// RetrieveBalance retrieves the balance of the logged in user.
func RetrieveBalance(
	ctx context.Context,
) (*market.BalanceResource, error) {
	m, err := cli.MarketFromContextCredentials(ctx)
	if err != nil {
		return nil, errors.Trace(err)
	}

	status, raw, err := m.Get(ctx,
		fmt.Sprintf("/balances/%s", m.Credentials.Username))
	if err != nil {
		return nil, errors.Trace(err)
	}
	if *status != http.StatusOK {
		return nil, apiError(status, raw)
	}

	var balance market.BalanceResource
	if err := raw.Extract("balance", &balance); err != nil {
		return nil, errors.Trace(err)
	}

	return &balance, nil
}
