package chain

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	bCtx "github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/log"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/payout"
)

type payoutImpl struct {
	client Client
}

// NewPayout returns a payout service forwarding native currency with the
// custodial signer.
func NewPayout(client Client) payout.Service {
	return &payoutImpl{client: client}
}

func (p *payoutImpl) Send(ctx bCtx.Ctx, chainId domain.ChainId, to domain.Address, amount *big.Int) error {
	txHash, err := p.client.SendValue(ctx, int32(chainId), common.HexToAddress(string(to)), amount)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
			"to":      to,
			"amount":  amount.String(),
		}).Error("client.SendValue failed")
		return err
	}
	ctx.WithFields(log.Fields{
		"chainId": chainId,
		"to":      to,
		"amount":  amount.String(),
		"tx":      txHash.Hex(),
	}).Info("payout sent")
	return nil
}
