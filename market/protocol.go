package market

import (
	"encoding/json"
	"math/big"
)

// UserResource is the representation of a user in the market API.
type UserResource struct {
	ID       string `json:"id"`
	Created  int64  `json:"created"`
	Username string `json:"username"`
}

// RoleResource is the representation of a role assignment in the market
// API. Held is false when the queried (role, username) pair is not part of
// the assignment set.
type RoleResource struct {
	Role     RoName `json:"role"`
	Username string `json:"username"`
	Held     bool   `json:"held"`
	Created  int64  `json:"created,omitempty"`
}

// ItemResource is the representation of an item in the market API.
type ItemResource struct {
	ID      int64 `json:"id"`
	Created int64 `json:"created"`

	Owner      string `json:"owner"`
	Creator    string `json:"creator"`
	URI        string `json:"uri"`
	RoyaltyBps int64  `json:"royalty_bps"`
}

// ListingResource is the representation of a listing in the market API.
type ListingResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Item   int64    `json:"item"`
	Seller string   `json:"seller"`
	Price  *big.Int `json:"price"`
	Status LsStatus `json:"status"`
}

// RoyaltyResource is the result of a royalty computation for an item and a
// hypothetical sale amount.
type RoyaltyResource struct {
	Item     int64    `json:"item"`
	Receiver string   `json:"receiver"`
	Amount   *big.Int `json:"amount"`
}

// BalanceResource is the representation of an escrow balance in the market
// API.
type BalanceResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Owner string   `json:"owner"`
	Value *big.Int `json:"value"`
}

// TransferResource is the representation of a fund movement in the market
// API.
type TransferResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Kind        TrKind   `json:"kind"`
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Amount      *big.Int `json:"amount"`
	Item        *int64   `json:"item"`
}

// ParametersResource is the representation of the economic parameters in
// the market API.
type ParametersResource struct {
	ListingFee *big.Int `json:"listing_fee"`
	FeeBps     int64    `json:"fee_bps"`
	Wallet     string   `json:"wallet"`
	Updated    int64    `json:"updated"`
}

// EventResource is the representation of a domain event in the market API.
type EventResource struct {
	ID      string `json:"id"`
	Created int64  `json:"created"`

	Item    int64           `json:"item"`
	Kind    EvKind          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}
