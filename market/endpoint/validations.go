package endpoint

import (
	"context"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"github.com/curiohq/curio/lib/errors"
	"github.com/curiohq/curio/market"
	"github.com/curiohq/curio/market/model"
)

// UsernameRegexp is used to validate usernames.
var UsernameRegexp = regexp.MustCompile("^[a-z0-9\\-_]{1,64}$")

// ValidateUsername validates a username.
func ValidateUsername(
	ctx context.Context,
	username string,
) (*string, error) {
	if !UsernameRegexp.MatchString(username) {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "username_invalid",
			"The username you provided is invalid: %s. Usernames must "+
				"match %s.",
			username, UsernameRegexp.String(),
		))
	}

	return &username, nil
}

// ValidatePassword validates a password.
func ValidatePassword(
	ctx context.Context,
	password string,
) (*string, error) {
	if len(password) < 8 || len(password) > 256 {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "password_invalid",
			"The password you provided is invalid. Passwords must be "+
				"between 8 and 256 characters long.",
		))
	}

	return &password, nil
}

// ValidateItemID validates an item id.
func ValidateItemID(
	ctx context.Context,
	id string,
) (*int64, error) {
	i, err := strconv.ParseInt(id, 10, 64)
	if err != nil || i <= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "item_id_invalid",
			"The item id you provided is invalid: %s. Item ids are "+
				"positive integers.",
			id,
		))
	}

	return &i, nil
}

// ValidateAmount validates an amount.
func ValidateAmount(
	ctx context.Context,
	amount string,
) (*big.Int, error) {
	var a big.Int
	_, success := a.SetString(amount, 10)
	if !success ||
		a.Cmp(new(big.Int)) < 0 ||
		a.Cmp(model.MaxAmount) >= 0 {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "amount_invalid",
			"The amount you provided is invalid: %s. Amounts must be "+
				"integers between 0 and 2^128.",
			amount,
		))
	}

	return &a, nil
}

// ValidateRoyaltyBps validates a royalty rate expressed in basis points.
func ValidateRoyaltyBps(
	ctx context.Context,
	royaltyBps string,
) (*int64, error) {
	r, err := strconv.ParseInt(royaltyBps, 10, 64)
	if err != nil || r < 0 || r > 10000 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "invalid_royalty",
			"The royalty rate you provided is invalid: %s. Royalty rates "+
				"must be integers between 0 and 10000 basis points.",
			royaltyBps,
		))
	}

	return &r, nil
}

// ValidateFeeBps validates a marketplace fee rate expressed in basis
// points.
func ValidateFeeBps(
	ctx context.Context,
	feeBps string,
) (*int64, error) {
	f, err := strconv.ParseInt(feeBps, 10, 64)
	if err != nil || f < 0 || f > 10000 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "fee_bps_invalid",
			"The fee rate you provided is invalid: %s. Fee rates must be "+
				"integers between 0 and 10000 basis points.",
			feeBps,
		))
	}

	return &f, nil
}

// ValidateRole validates a role name.
func ValidateRole(
	ctx context.Context,
	role string,
) (*market.RoName, error) {
	r := market.RoName(role)
	if !market.RoNames[r] {
		return nil, errors.Trace(errors.NewUserErrorf(nil,
			400, "role_invalid",
			"The role you provided is invalid: %s. Valid roles are admin "+
				"and minter.",
			role,
		))
	}

	return &r, nil
}

// ValidateCreatedBefore validates a paging created_before.
func ValidateCreatedBefore(
	ctx context.Context,
	createdBefore string,
) (*time.Time, error) {
	if createdBefore == "" {
		t := time.Now()
		return &t, nil
	}

	c, err := strconv.ParseInt(createdBefore, 10, 64)
	if err != nil || c < 0 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "created_before_invalid",
			"The paging created_before value provided is invalid: %s. "+
				"Paging created_before must be a positive integer "+
				"representing a unix time in milliseconds.",
			createdBefore,
		))
	}
	converted := time.Unix(0, c*market.TimeResolutionNs)

	return &converted, nil
}

// ValidateLimit validates a paging limit.
func ValidateLimit(
	ctx context.Context,
	limit string,
) (*uint, error) {
	if limit == "" {
		l := uint(100)
		return &l, nil
	}

	l, err := strconv.ParseInt(limit, 10, 64)
	if err != nil || l < 0 || l > 1000 {
		return nil, errors.Trace(errors.NewUserErrorf(err,
			400, "limit_invalid",
			"The paging limit provided is invalid: %s. Paging limit must "+
				"be an integer between 0 and 1000.",
			limit,
		))
	}
	converted := uint(l)

	return &converted, nil
}
