package pricefmt

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// nativeDecimals is the decimal count of the chain native currency
const nativeDecimals = 18

// FromWei converts a wei amount to its display form in the native currency.
func FromWei(value *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(value, -nativeDecimals)
}

// FromWeiString converts a wei amount string to its display form in the
// native currency.
func FromWeiString(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-nativeDecimals), nil
}
