package payout

import (
	"math/big"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain"
)

// Service moves native currency out of the marketplace account, to sellers
// on purchase and to the treasury on relisting. Sends are fail-fast; the
// ledger never retries, it aborts the whole operation instead.
type Service interface {
	Send(ctx ctx.Ctx, chainId domain.ChainId, to domain.Address, amount *big.Int) error
}
