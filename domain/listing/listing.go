package listing

import (
	"time"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/asset"
)

// ItemId is assigned densely from 1 in creation order and never reused
type ItemId uint64

// Listing ties a tree certificate to its sale state. A listing is created
// once per asset and never deleted; relist/purchase cycles reuse the same
// item id forever.
type Listing struct {
	ItemId    ItemId `json:"itemId" bson:"itemId"`
	asset.Ref `bson:"inline"`
	// Price is the current ask in wei; meaningful only while ForSale
	Price        string         `json:"price" bson:"price"`
	DisplayPrice string         `json:"displayPrice" bson:"displayPrice"`
	Seller       domain.Address `json:"seller" bson:"seller"`
	Owner        domain.Address `json:"owner" bson:"owner"`
	ForSale      bool           `json:"forSale" bson:"forSale"`
	CreatedAt    time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt" bson:"updatedAt"`
}

func (l *Listing) ToId() Id {
	return Id{ItemId: l.ItemId}
}

func (l *Listing) LowerCase() {
	l.Ref.LowerCase()
	l.Seller = l.Seller.ToLower()
	l.Owner = l.Owner.ToLower()
}

type Id struct {
	ItemId ItemId `json:"itemId" bson:"itemId"`
}

type Patchable struct {
	Price        *string         `json:"price" bson:"price,omitempty"`
	DisplayPrice *string         `json:"displayPrice" bson:"displayPrice,omitempty"`
	Seller       *domain.Address `json:"seller" bson:"seller,omitempty"`
	Owner        *domain.Address `json:"owner" bson:"owner,omitempty"`
	ForSale      *bool           `json:"forSale" bson:"forSale,omitempty"`
	UpdatedAt    *time.Time      `json:"updatedAt" bson:"updatedAt,omitempty"`
}

type FindAllOptions struct {
	ForSale *bool
	Owner   *domain.Address
	Seller  *domain.Address
	Offset  *int32
	Limit   *int32
}

type FindAllOptionsFunc func(*FindAllOptions) error

func GetFindAllOptions(opts ...FindAllOptionsFunc) (FindAllOptions, error) {
	res := FindAllOptions{}

	for _, opt := range opts {
		if err := opt(&res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func WithForSale(forSale bool) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.ForSale = &forSale
		return nil
	}
}

func WithOwner(owner domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		owner = owner.ToLower()
		options.Owner = &owner
		return nil
	}
}

func WithSeller(seller domain.Address) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		seller = seller.ToLower()
		options.Seller = &seller
		return nil
	}
}

func WithPagination(offset int32, limit int32) FindAllOptionsFunc {
	return func(options *FindAllOptions) error {
		options.Offset = &offset
		options.Limit = &limit
		return nil
	}
}

// Repo persists listings. FindAll always returns listings in ascending
// itemId order.
type Repo interface {
	FindAll(ctx ctx.Ctx, opts ...FindAllOptionsFunc) ([]*Listing, error)
	FindOne(ctx ctx.Ctx, id Id) (*Listing, error)
	FindOneByRef(ctx ctx.Ctx, ref asset.Ref) (*Listing, error)
	Count(ctx ctx.Ctx, opts ...FindAllOptionsFunc) (int, error)
	Insert(ctx ctx.Ctx, listing *Listing) error
	Update(ctx ctx.Ctx, id Id, patchable Patchable) error

	// NextItemId allocates the next dense item id, starting from 1
	NextItemId(ctx ctx.Ctx) (ItemId, error)
}

type UseCase interface {
	// CreateListing registers a certificate for sale. Operator only. The
	// certificate stays in the operator's custody until a sale completes.
	CreateListing(ctx ctx.Ctx, caller domain.Address, ref asset.Ref, price string) (*Listing, error)

	// Purchase moves the certificate to the buyer and forwards the exact
	// asking price to the seller, as one atomic step.
	Purchase(ctx ctx.Ctx, id ItemId, buyer domain.Address, paidAmount string) (*Listing, error)

	// Relist puts an off-sale listing back on sale at a new price. Owner
	// only. Non-operator owners pay the listing fee to the treasury.
	Relist(ctx ctx.Ctx, id ItemId, caller domain.Address, newPrice, paidFee string) (*Listing, error)

	// Delist takes a listing off sale. Seller only.
	Delist(ctx ctx.Ctx, id ItemId, caller domain.Address) (*Listing, error)

	GetListing(ctx ctx.Ctx, id ItemId) (*Listing, error)
	AllItems(ctx ctx.Ctx) ([]*Listing, error)
	ItemsForSale(ctx ctx.Ctx) ([]*Listing, error)
	ItemsOwnedBy(ctx ctx.Ctx, owner domain.Address) ([]*Listing, error)

	FindActivities(ctx ctx.Ctx, opts ...ActivityFindAllOptionsFunc) ([]*Activity, error)
}
