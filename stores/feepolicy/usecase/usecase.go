package usecase

import (
	"time"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/log"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/feepolicy"
)

type FeePolicyUseCaseCfg struct {
	Repo     feepolicy.Repo
	Operator domain.Address
	Treasury domain.Address
}

type impl struct {
	repo     feepolicy.Repo
	operator domain.Address
	treasury domain.Address
}

func New(cfg *FeePolicyUseCaseCfg) feepolicy.UseCase {
	return &impl{
		repo:     cfg.Repo,
		operator: cfg.Operator,
		treasury: cfg.Treasury,
	}
}

func (im *impl) Get(ctx ctx.Ctx, chainId domain.ChainId) (*feepolicy.FeePolicy, error) {
	policy, err := im.repo.FindOne(ctx, feepolicy.Id{ChainId: chainId})
	if err == domain.ErrNotFound {
		return &feepolicy.FeePolicy{
			ChainId:  chainId,
			Fee:      feepolicy.DefaultFee,
			Treasury: im.treasury.ToLower(),
		}, nil
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"chainId": chainId,
		}).Error("failed to repo.FindOne")
		return nil, err
	}

	return policy, nil
}

func (im *impl) SetFee(ctx ctx.Ctx, caller domain.Address, chainId domain.ChainId, fee string) (*feepolicy.FeePolicy, error) {
	if !caller.Equals(im.operator) {
		return nil, domain.ErrUnauthorized
	}

	if _, err := domain.ParseAmount(fee); err != nil {
		return nil, err
	}

	policy, err := im.Get(ctx, chainId)
	if err != nil {
		return nil, err
	}

	policy.Fee = fee
	policy.UpdatedAt = time.Now()

	if err := im.repo.Upsert(ctx, policy); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"policy": *policy,
		}).Error("failed to repo.Upsert")
		return nil, err
	}

	return policy, nil
}
