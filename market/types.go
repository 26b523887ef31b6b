package market

import (
	"database/sql/driver"

	"github.com/curiohq/curio/lib/errors"
)

// RoName is the name of a role.
type RoName string

const (
	// RoAdmin is the administrative role, required to grant or revoke roles
	// and to update the economic parameters.
	RoAdmin RoName = "admin"
	// RoMinter is the minting role, required to mint items.
	RoMinter RoName = "minter"
)

// RoNames is the set of valid role names.
var RoNames = map[RoName]bool{
	RoAdmin:  true,
	RoMinter: true,
}

// Value implements driver.Valuer.
func (s RoName) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *RoName) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = RoName(src)
	case string:
		*s = RoName(src)
	default:
		return errors.Newf(
			"Incompatible type for RoName with value: %q", src)
	}

	return nil
}

// LsStatus is the status of a listing.
type LsStatus string

const (
	// LsStActive is used to mark a listing as active.
	LsStActive LsStatus = "active"
	// LsStSold is used to mark a listing as closed by a purchase.
	LsStSold LsStatus = "sold"
	// LsStCancelled is used to mark a listing as closed by its seller.
	LsStCancelled LsStatus = "cancelled"
)

// Value implements driver.Valuer.
func (s LsStatus) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *LsStatus) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = LsStatus(src)
	case string:
		*s = LsStatus(src)
	default:
		return errors.Newf(
			"Incompatible status for LsStatus with value: %q", src)
	}

	return nil
}

// TrKind is the kind of a transfer.
type TrKind string

const (
	// TrKdDeposit is an external deposit credited to an account.
	TrKdDeposit TrKind = "deposit"
	// TrKdListingFee is the flat fee paid to list an item.
	TrKdListingFee TrKind = "listing_fee"
	// TrKdMarketplaceFee is the percentage fee retained on a sale.
	TrKdMarketplaceFee TrKind = "marketplace_fee"
	// TrKdRoyalty is the royalty routed to the item creator on a sale.
	TrKdRoyalty TrKind = "royalty"
	// TrKdProceeds is the remainder routed to the seller on a sale.
	TrKdProceeds TrKind = "proceeds"
)

// Value implements driver.Valuer.
func (s TrKind) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *TrKind) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = TrKind(src)
	case string:
		*s = TrKind(src)
	default:
		return errors.Newf(
			"Incompatible kind for TrKind with value: %q", src)
	}

	return nil
}

// EvKind is the kind of a domain event.
type EvKind string

const (
	// EvKdMinted is emitted when an item is minted.
	EvKdMinted EvKind = "minted"
	// EvKdListed is emitted when an item is listed for sale.
	EvKdListed EvKind = "listed"
	// EvKdSold is emitted when a listed item is bought.
	EvKdSold EvKind = "sold"
	// EvKdCancelled is emitted when a listing is cancelled by its seller.
	EvKdCancelled EvKind = "cancelled"
)

// Value implements driver.Valuer.
func (s EvKind) Value() (value driver.Value, err error) {
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *EvKind) Scan(src interface{}) error {
	switch src := src.(type) {
	case []byte:
		*s = EvKind(src)
	case string:
		*s = EvKind(src)
	default:
		return errors.Newf(
			"Incompatible kind for EvKind with value: %q", src)
	}

	return nil
}
