package repository

import (
	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/database/mongoclient"
	"github.com/treesdao/goapi/base/log"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/asset"
	"github.com/treesdao/goapi/domain/listing"
	"github.com/treesdao/goapi/service/query"
	"go.mongodb.org/mongo-driver/bson"
)

// itemIdCounter is the counter document allocating dense item ids
const itemIdCounter = "itemId"

type counterDoc struct {
	Name string `bson:"name"`
	Seq  uint64 `bson:"seq"`
}

type listingRepoImpl struct {
	q query.Mongo
}

func NewListingRepo(q query.Mongo) listing.Repo {
	return &listingRepoImpl{q}
}

func (im *listingRepoImpl) makeQuery(opts ...listing.FindAllOptionsFunc) (bson.M, error) {
	options, err := listing.GetFindAllOptions(opts...)
	if err != nil {
		return nil, err
	}
	query := bson.M{}

	if options.ForSale != nil {
		query["forSale"] = *options.ForSale
	}

	if options.Owner != nil {
		query["owner"] = *options.Owner
	}

	if options.Seller != nil {
		query["seller"] = *options.Seller
	}

	return query, nil
}

func (im *listingRepoImpl) FindAll(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) ([]*listing.Listing, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return nil, err
	}

	options, err := listing.GetFindAllOptions(opts...)
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

	res := []*listing.Listing{}
	err = im.q.Search(ctx, domain.TableListings, offset, limit, "itemId", query, &res)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Search")
		return nil, err
	}

	return res, nil
}

func (im *listingRepoImpl) FindOne(ctx ctx.Ctx, id listing.Id) (*listing.Listing, error) {
	qry, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := listing.Listing{}
	err = im.q.FindOne(ctx, domain.TableListings, qry, &res)
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

func (im *listingRepoImpl) FindOneByRef(ctx ctx.Ctx, ref asset.Ref) (*listing.Listing, error) {
	ref.LowerCase()
	qry, err := mongoclient.MakeBsonM(ref)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"ref": ref,
		}).Error("failed to mongoclient.MakeBsonM")
		return nil, err
	}

	res := listing.Listing{}
	err = im.q.FindOne(ctx, domain.TableListings, qry, &res)
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

func (im *listingRepoImpl) Count(ctx ctx.Ctx, opts ...listing.FindAllOptionsFunc) (int, error) {
	query, err := im.makeQuery(opts...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("im.makeQuery")
		return 0, err
	}

	cnt, err := im.q.Count(ctx, domain.TableListings, query)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":   err,
			"query": query,
		}).Error("failed to q.Count")
		return 0, err
	}

	return cnt, nil
}

func (im *listingRepoImpl) Insert(ctx ctx.Ctx, item *listing.Listing) error {
	item.LowerCase()
	err := im.q.Insert(ctx, domain.TableListings, item)
	if err == query.ErrDuplicateKey {
		return domain.ErrDuplicateListing
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":     err,
			"listing": *item,
		}).Error("failed to q.Insert")
		return err
	}
	return nil
}

func (im *listingRepoImpl) Update(ctx ctx.Ctx, id listing.Id, patchable listing.Patchable) error {
	selector, err := mongoclient.MakeBsonM(id)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"id":  id,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	updater, err := mongoclient.MakeBsonM(patchable)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":       err,
			"patchable": patchable,
		}).Error("failed to mongoclient.MakeBsonM")
		return err
	}

	err = im.q.Patch(ctx, domain.TableListings, selector, updater)
	if err == query.ErrNotFound {
		return domain.ErrNotFound
	} else if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"selector": selector,
			"updater":  updater,
		}).Error("failed to q.Patch")
		return err
	}

	return nil
}

func (im *listingRepoImpl) NextItemId(ctx ctx.Ctx) (listing.ItemId, error) {
	res := counterDoc{}
	err := im.q.Increment(ctx, domain.TableCounters, bson.M{"name": itemIdCounter}, &res, "seq", 1)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
		}).Error("failed to q.Increment")
		return 0, err
	}
	return listing.ItemId(res.Seq), nil
}
