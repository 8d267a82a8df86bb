package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrInvalidNumberFormat is returned for amounts that do not parse as
	// base-10 unsigned integers
	ErrInvalidNumberFormat = errors.New("invalid number format")
	// ErrInvalidAddress is returned for malformed addresses
	ErrInvalidAddress = errors.New("Invalid address")

	// ledger precondition errors, all non-retryable; callers must correct
	// the request before retrying

	// ErrUnauthorized is returned when a caller invokes an operator-only
	// operation
	ErrUnauthorized = errors.New("caller is not the marketplace operator")
	// ErrAssetNotFound is returned when the asset registry does not know the
	// referenced certificate
	ErrAssetNotFound = errors.New("asset does not exist in registry")
	// ErrDuplicateListing is returned when the asset already has a listing,
	// past or present
	ErrDuplicateListing = errors.New("asset already has a marketplace listing")
	// ErrInvalidPrice is returned when creating or relisting below 1 wei
	ErrInvalidPrice = errors.New("listing price must be at least 1 wei")
	// ErrListingNotFound is returned when the item id references no listing
	ErrListingNotFound = errors.New("listing does not exist")
	// ErrAlreadyOwned is returned when a buyer attempts to purchase a listing
	// they already own
	ErrAlreadyOwned = errors.New("buyer already owns this listing")
	// ErrNotForSale is returned for purchase/delist of an off-sale listing
	ErrNotForSale = errors.New("listing is not for sale")
	// ErrPriceMismatch is returned when the paid amount differs from the ask
	ErrPriceMismatch = errors.New("paid amount must equal the asking price")
	// ErrNotOwner is returned when a non-owner attempts to relist
	ErrNotOwner = errors.New("caller is not the listing owner")
	// ErrAlreadyForSale is returned for relisting a listing already on sale
	ErrAlreadyForSale = errors.New("listing already is for sale")
	// ErrFeeMismatch is returned when a non-operator relists without paying
	// exactly the current listing fee
	ErrFeeMismatch = errors.New("paid fee must equal the listing fee")
	// ErrNotSeller is returned when a non-seller attempts to delist
	ErrNotSeller = errors.New("caller is not the listing seller")
	// ErrAssetTransferFailed is returned when the registry refuses to move the
	// certificate; the whole operation is rolled back
	ErrAssetTransferFailed = errors.New("asset transfer failed")
	// ErrValueTransferFailed is returned when forwarding value to the seller
	// or treasury fails; the whole operation is rolled back
	ErrValueTransferFailed = errors.New("value transfer failed")
)
