package domain

import (
	"math/big"
	"strings"
)

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

type ChainId int32

type Address string

const EmptyAddress = Address("0x0000000000000000000000000000000000000000")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerPtr() *Address {
	res := a.ToLower()
	return &res
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// AssetId is the certificate id within its registry, base-10 encoded
type AssetId string

func (i AssetId) String() string {
	return string(i)
}

func (i AssetId) ToBigInt() (*big.Int, error) {
	id, ok := new(big.Int).SetString(string(i), 10)
	if !ok {
		return nil, ErrInvalidNumberFormat
	}
	return id, nil
}

type TxHash string

// ParseAmount parses a base-10 wei amount. Negative amounts are rejected.
func ParseAmount(amount string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok || n.Sign() < 0 {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}
