package repository

import (
	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/database/mongoclient"
	"github.com/treesdao/goapi/base/log"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/feepolicy"
	"github.com/treesdao/goapi/service/query"
)

type impl struct {
	q query.Mongo
}

func New(q query.Mongo) feepolicy.Repo {
	return &impl{q}
}

func (im *impl) FindOne(ctx ctx.Ctx, id feepolicy.Id) (*feepolicy.FeePolicy, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := feepolicy.FeePolicy{}
	err = im.q.FindOne(ctx, domain.TableFeePolicies, qry, &res)
	if err == query.ErrNotFound {
		return nil, domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": qry,
		}).Error("failed to q.FindOne")
		return nil, err
	}

	return &res, nil
}

func (im *impl) Upsert(ctx ctx.Ctx, policy *feepolicy.FeePolicy) error {
	selector, err := mongoclient.MakeBsonM(policy.ToId())
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  policy.ToId(),
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	if err := im.q.Upsert(ctx, domain.TableFeePolicies, selector, policy); err != nil {
		ctx.WithFields(log.Fields{
			"err":    err,
			"policy": *policy,
		}).Error("failed to q.Upsert")
		return err
	}

	return nil
}
