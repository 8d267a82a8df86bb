package feepolicy

import (
	"time"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain"
)

// DefaultFee is the listing fee in wei a ledger starts with, before the
// operator ever calls SetFee.
const DefaultFee = "45000000000000"

// FeePolicy holds the mutable listing fee and the treasury the fee is
// forwarded to. One document per chain.
type FeePolicy struct {
	ChainId   domain.ChainId `json:"chainId" bson:"chainId"`
	Fee       string         `json:"fee" bson:"fee"`
	Treasury  domain.Address `json:"treasury" bson:"treasury"`
	UpdatedAt time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (p *FeePolicy) ToId() Id {
	return Id{ChainId: p.ChainId}
}

type Id struct {
	ChainId domain.ChainId `json:"chainId" bson:"chainId"`
}

type Repo interface {
	FindOne(ctx ctx.Ctx, id Id) (*FeePolicy, error)
	Upsert(ctx ctx.Ctx, policy *FeePolicy) error
}

type UseCase interface {
	// Get returns the current policy, falling back to the configured
	// defaults when the operator never changed the fee.
	Get(ctx ctx.Ctx, chainId domain.ChainId) (*FeePolicy, error)

	// SetFee persists a new listing fee for all subsequent relistings.
	// Operator only.
	SetFee(ctx ctx.Ctx, caller domain.Address, chainId domain.ChainId, fee string) (*FeePolicy, error)
}
