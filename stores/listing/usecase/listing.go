package usecase

import (
	"math/big"
	"sync"
	"time"

	"golang.org/x/xerrors"

	bCtx "github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/log"
	"github.com/treesdao/goapi/base/pricefmt"
	"github.com/treesdao/goapi/base/ptr"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/asset"
	"github.com/treesdao/goapi/domain/feepolicy"
	"github.com/treesdao/goapi/domain/listing"
	"github.com/treesdao/goapi/domain/payout"
	"github.com/treesdao/goapi/service/query"
)

type ListingUseCaseCfg struct {
	ListingRepo  listing.Repo
	ActivityRepo listing.ActivityRepo
	FeePolicyUC  feepolicy.UseCase
	Registry     asset.Registry
	Payout       payout.Service
	TxnRunner    query.TxnRunner
	Operator     domain.Address
	ChainId      domain.ChainId
}

type impl struct {
	listingRepo  listing.Repo
	activityRepo listing.ActivityRepo
	feePolicyUC  feepolicy.UseCase
	registry     asset.Registry
	payout       payout.Service
	txnRunner    query.TxnRunner
	operator     domain.Address
	chainId      domain.ChainId

	// serializes all ledger mutations. each operation commits state before
	// the outbound transfer is attempted, so a hostile payee cannot re-enter
	// against a still-for-sale listing.
	mu sync.Mutex
}

func New(cfg *ListingUseCaseCfg) listing.UseCase {
	return &impl{
		listingRepo:  cfg.ListingRepo,
		activityRepo: cfg.ActivityRepo,
		feePolicyUC:  cfg.FeePolicyUC,
		registry:     cfg.Registry,
		payout:       cfg.Payout,
		txnRunner:    cfg.TxnRunner,
		operator:     cfg.Operator.ToLower(),
		chainId:      cfg.ChainId,
	}
}

func (im *impl) CreateListing(ctx bCtx.Ctx, caller domain.Address, ref asset.Ref, price string) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if !caller.Equals(im.operator) {
		return nil, domain.ErrUnauthorized
	}

	amount, err := domain.ParseAmount(price)
	if err != nil || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	ref.LowerCase()

	exists, err := im.registry.Exists(ctx, ref)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"ref": ref,
		}).Error("failed to registry.Exists")
		return nil, err
	} else if !exists {
		return nil, domain.ErrAssetNotFound
	}

	// the asset to listing binding is permanent, a ref gets at most one
	// listing ever, even after purchase or delisting
	existing, err := im.listingRepo.FindOneByRef(ctx, ref)
	if err == nil {
		return nil, xerrors.Errorf("itemId %d: %w", existing.ItemId, domain.ErrDuplicateListing)
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	displayPrice, err := pricefmt.FromWeiString(price)
	if err != nil {
		return nil, domain.ErrInvalidPrice
	}

	now := time.Now()
	item := &listing.Listing{
		Ref:          ref,
		Price:        price,
		DisplayPrice: displayPrice.String(),
		Seller:       caller.ToLower(),
		Owner:        caller.ToLower(),
		ForSale:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// the id is allocated inside the transaction so a failed insert does not
	// leave a gap in the dense itemId sequence
	err = im.txnRunner.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		itemId, err := im.listingRepo.NextItemId(ctx)
		if err != nil {
			return err
		}
		item.ItemId = itemId

		if err := im.listingRepo.Insert(ctx, item); err != nil {
			return err
		}
		return im.insertActivity(ctx, listing.ActivityTypeListed, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (im *impl) Purchase(ctx bCtx.Ctx, id listing.ItemId, buyer domain.Address, paidAmount string) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	item, err := im.findListing(ctx, id)
	if err != nil {
		return nil, err
	}

	buyer = buyer.ToLower()

	if buyer.Equals(item.Owner) {
		return nil, domain.ErrAlreadyOwned
	}

	if !item.ForSale {
		return nil, domain.ErrNotForSale
	}

	paid, err := domain.ParseAmount(paidAmount)
	if err != nil {
		return nil, err
	}

	price, err := domain.ParseAmount(item.Price)
	if err != nil {
		return nil, err
	}

	if paid.Cmp(price) != 0 {
		return nil, domain.ErrPriceMismatch
	}

	prevOwner := item.Owner
	seller := item.Seller
	now := time.Now()

	// seller stays on the record until the next relisting
	item.Owner = buyer
	item.ForSale = false
	item.UpdatedAt = now

	err = im.txnRunner.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		err := im.listingRepo.Update(ctx, item.ToId(), listing.Patchable{
			Owner:     &buyer,
			ForSale:   ptr.Bool(false),
			UpdatedAt: &now,
		})
		if err != nil {
			return err
		}

		if err := im.insertActivity(ctx, listing.ActivityTypePurchased, item); err != nil {
			return err
		}

		if err := im.registry.Transfer(ctx, item.Ref, prevOwner, buyer); err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"itemId": id,
			}).Error("failed to registry.Transfer")
			return domain.ErrAssetTransferFailed
		}

		if err := im.payout.Send(ctx, im.chainId, seller, price); err != nil {
			ctx.WithFields(log.Fields{
				"err":    err,
				"itemId": id,
			}).Error("failed to payout.Send")
			return domain.ErrValueTransferFailed
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (im *impl) Relist(ctx bCtx.Ctx, id listing.ItemId, caller domain.Address, newPrice, paidFee string) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	item, err := im.findListing(ctx, id)
	if err != nil {
		return nil, err
	}

	caller = caller.ToLower()

	if !caller.Equals(item.Owner) {
		return nil, domain.ErrNotOwner
	}

	if item.ForSale {
		return nil, domain.ErrAlreadyForSale
	}

	amount, err := domain.ParseAmount(newPrice)
	if err != nil || amount.Sign() <= 0 {
		return nil, domain.ErrInvalidPrice
	}

	// the operator relists for free, everyone else pays the current listing
	// fee to the treasury
	var fee *feeTransfer
	if !caller.Equals(im.operator) {
		policy, err := im.feePolicyUC.Get(ctx, im.chainId)
		if err != nil {
			return nil, err
		}

		required, err := domain.ParseAmount(policy.Fee)
		if err != nil {
			return nil, err
		}

		paid, err := domain.ParseAmount(paidFee)
		if err != nil {
			return nil, domain.ErrFeeMismatch
		}

		if paid.Cmp(required) != 0 {
			return nil, domain.ErrFeeMismatch
		}

		if required.Sign() > 0 {
			fee = &feeTransfer{to: policy.Treasury, amount: required}
		}
	}

	displayPrice, err := pricefmt.FromWeiString(newPrice)
	if err != nil {
		return nil, domain.ErrInvalidPrice
	}

	now := time.Now()
	item.Price = newPrice
	item.DisplayPrice = displayPrice.String()
	item.Seller = caller
	item.ForSale = true
	item.UpdatedAt = now

	err = im.txnRunner.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		// the fee moves to the treasury before the listing goes back on sale
		if fee != nil {
			if err := im.payout.Send(ctx, im.chainId, fee.to, fee.amount); err != nil {
				ctx.WithFields(log.Fields{
					"err":    err,
					"itemId": id,
				}).Error("failed to payout.Send")
				return domain.ErrValueTransferFailed
			}
		}

		err := im.listingRepo.Update(ctx, item.ToId(), listing.Patchable{
			Price:        &item.Price,
			DisplayPrice: &item.DisplayPrice,
			Seller:       &caller,
			ForSale:      ptr.Bool(true),
			UpdatedAt:    &now,
		})
		if err != nil {
			return err
		}

		return im.insertActivity(ctx, listing.ActivityTypeRelisted, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (im *impl) Delist(ctx bCtx.Ctx, id listing.ItemId, caller domain.Address) (*listing.Listing, error) {
	im.mu.Lock()
	defer im.mu.Unlock()

	item, err := im.findListing(ctx, id)
	if err != nil {
		return nil, err
	}

	if !caller.Equals(item.Seller) {
		return nil, domain.ErrNotSeller
	}

	if !item.ForSale {
		return nil, domain.ErrNotForSale
	}

	now := time.Now()
	item.ForSale = false
	item.UpdatedAt = now

	err = im.txnRunner.RunWithTransaction(ctx, func(ctx bCtx.Ctx) error {
		err := im.listingRepo.Update(ctx, item.ToId(), listing.Patchable{
			ForSale:   ptr.Bool(false),
			UpdatedAt: &now,
		})
		if err != nil {
			return err
		}

		return im.insertActivity(ctx, listing.ActivityTypeDelisted, item)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (im *impl) GetListing(ctx bCtx.Ctx, id listing.ItemId) (*listing.Listing, error) {
	return im.findListing(ctx, id)
}

func (im *impl) AllItems(ctx bCtx.Ctx) ([]*listing.Listing, error) {
	return im.listingRepo.FindAll(ctx)
}

func (im *impl) ItemsForSale(ctx bCtx.Ctx) ([]*listing.Listing, error) {
	return im.listingRepo.FindAll(ctx, listing.WithForSale(true))
}

func (im *impl) ItemsOwnedBy(ctx bCtx.Ctx, owner domain.Address) ([]*listing.Listing, error) {
	return im.listingRepo.FindAll(ctx, listing.WithOwner(owner))
}

func (im *impl) FindActivities(ctx bCtx.Ctx, opts ...listing.ActivityFindAllOptionsFunc) ([]*listing.Activity, error) {
	return im.activityRepo.FindAll(ctx, opts...)
}

type feeTransfer struct {
	to     domain.Address
	amount *big.Int
}

func (im *impl) findListing(ctx bCtx.Ctx, id listing.ItemId) (*listing.Listing, error) {
	item, err := im.listingRepo.FindOne(ctx, listing.Id{ItemId: id})
	if err == domain.ErrNotFound {
		return nil, domain.ErrListingNotFound
	} else if err != nil {
		return nil, err
	}
	return item, nil
}

func (im *impl) insertActivity(ctx bCtx.Ctx, typ listing.ActivityType, item *listing.Listing) error {
	return im.activityRepo.Insert(ctx, &listing.Activity{
		Type:    typ,
		Listing: *item,
		Time:    time.Now(),
	})
}
