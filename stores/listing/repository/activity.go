package repository

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/log"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/listing"
	"github.com/treesdao/goapi/service/query"
)

type activityRepoImpl struct {
	q query.Mongo
}

func NewActivityRepo(q query.Mongo) listing.ActivityRepo {
	return &activityRepoImpl{q}
}

func (im *activityRepoImpl) makeQuery(opts ...listing.ActivityFindAllOptionsFunc) (bson.M, error) {
	options, err := listing.GetActivityFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.ItemId != nil {
		query["listing.itemId"] = *options.ItemId
	}

	if options.Type != nil {
		query["type"] = *options.Type
	}

	if options.Account != nil {
		query["$or"] = bson.A{
			bson.M{"listing.seller": *options.Account},
			bson.M{"listing.owner": *options.Account},
		}
	}

	return query, nil
}

func (im *activityRepoImpl) Insert(ctx ctx.Ctx, activity *listing.Activity) error {
	if activity.ActivityId == "" {
		activity.ActivityId = uuid.New().String()
	}
	if activity.Time.IsZero() {
		activity.Time = time.Now()
	}

	if err := im.q.Insert(ctx, domain.TableActivities, activity); err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"activity": *activity,
		}).Error("failed to q.Insert")
		return err
	}

	return nil
}

func (im *activityRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.ActivityFindAllOptionsFunc) ([]*listing.Activity, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, err := listing.GetActivityFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}

	offset := 0
	limit := 0
	if options.Offset != nil {
		offset = int(*options.Offset)
	}
	if options.Limit != nil {
		limit = int(*options.Limit)
	}

	res := []*listing.Activity{}
	err = im.q.Search(ctx, domain.TableActivities, offset, limit, "-time", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}
