package asset

import (
	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain"
)

// Ref identifies a tree certificate by its registry contract and asset id.
// One ref receives at most one marketplace listing for the lifetime of the
// ledger.
type Ref struct {
	ChainId  domain.ChainId `json:"chainId" bson:"chainId"`
	Registry domain.Address `json:"registry" bson:"registry"`
	AssetId  domain.AssetId `json:"assetId" bson:"assetID"`
}

func (r *Ref) LowerCase() {
	r.Registry = r.Registry.ToLower()
}

// Registry is the narrow surface the ledger consumes from the external
// certificate registry. The registry must have pre-approved the marketplace
// to transfer certificates on the current owner's behalf; that approval is
// an external precondition, not enforced here.
type Registry interface {
	Exists(ctx ctx.Ctx, ref Ref) (bool, error)
	OwnerOf(ctx ctx.Ctx, ref Ref) (domain.Address, error)
	Transfer(ctx ctx.Ctx, ref Ref, from, to domain.Address) error
}
