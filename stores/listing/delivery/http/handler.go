package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/delivery"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/asset"
	"github.com/treesdao/goapi/domain/listing"
	"github.com/treesdao/goapi/middleware"
	authMiddleware "github.com/treesdao/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	listing        listing.UseCase
	defaultChainId domain.ChainId
}

// New registers the item ledger endpoints. The read surface is public, the
// lifecycle transitions require a signed-in address. Listing reads always go
// to the database so a purchase or delist is visible on the very next read;
// only the append-only activity feed is cached.
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, listingUC listing.UseCase, defaultChainId domain.ChainId) {
	h := &handler{listingUC, defaultChainId}

	g := e.Group("/listings")

	g.GET("", h.index)
	g.GET("/:itemId", h.show)
	g.GET("/:itemId/activities", h.itemActivities)
	g.POST("", h.create, authMiddleware.Auth())
	g.POST("/:itemId/purchase", h.purchase, authMiddleware.Auth())
	g.POST("/:itemId/relist", h.relist, authMiddleware.Auth())
	g.POST("/:itemId/delist", h.delist, authMiddleware.Auth())

	e.GET("/activities", h.activities, middleware.CacheHttp(15*time.Second))
}

func (h *handler) index(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ForSale *bool           `query:"forSale"`
		Owner   *domain.Address `query:"owner"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	var (
		items []*listing.Listing
		err   error
	)
	switch {
	case p.Owner != nil:
		items, err = h.listing.ItemsOwnedBy(ctx, *p.Owner)
	case p.ForSale != nil && *p.ForSale:
		items, err = h.listing.ItemsForSale(ctx)
	default:
		items, err = h.listing.AllItems(ctx)
	}
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, items)
}

func (h *handler) show(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	itemId, err := parseItemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	item, err := h.listing.GetListing(ctx, itemId)
	if err != nil {
		return h.errResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, item)
}

func (h *handler) create(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	caller, ok := c.Get("address").(domain.Address)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
	}

	type params struct {
		ChainId  *domain.ChainId `json:"chainId"`
		Registry domain.Address  `json:"registry" validate:"required"`
		AssetId  domain.AssetId  `json:"assetId" validate:"required"`
		Price    string          `json:"price" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	chainId := h.defaultChainId
	if p.ChainId != nil {
		chainId = *p.ChainId
	}

	ref := asset.Ref{ChainId: chainId, Registry: p.Registry, AssetId: p.AssetId}

	item, err := h.listing.CreateListing(ctx, caller, ref, p.Price)
	if err != nil {
		return h.errResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusCreated, item)
}

func (h *handler) purchase(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	caller, ok := c.Get("address").(domain.Address)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
	}

	itemId, err := parseItemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	type params struct {
		PaidAmount string `json:"paidAmount" validate:"required"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	item, err := h.listing.Purchase(ctx, itemId, caller, p.PaidAmount)
	if err != nil {
		return h.errResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, item)
}

func (h *handler) relist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	caller, ok := c.Get("address").(domain.Address)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
	}

	itemId, err := parseItemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	type params struct {
		NewPrice string `json:"newPrice" validate:"required"`
		PaidFee  string `json:"paidFee"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, err)
	}

	if err := c.Validate(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	paidFee := p.PaidFee
	if paidFee == "" {
		paidFee = "0"
	}

	item, err := h.listing.Relist(ctx, itemId, caller, p.NewPrice, paidFee)
	if err != nil {
		return h.errResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, item)
}

func (h *handler) delist(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	caller, ok := c.Get("address").(domain.Address)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
	}

	itemId, err := parseItemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	item, err := h.listing.Delist(ctx, itemId, caller)
	if err != nil {
		return h.errResp(c, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, item)
}

func (h *handler) activities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ItemId  *uint64               `query:"itemId"`
		Type    *listing.ActivityType `query:"type"`
		Account *domain.Address       `query:"account"`
		Offset  int32                 `query:"offset"`
		Limit   int32                 `query:"limit"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	opts := []listing.ActivityFindAllOptionsFunc{}
	if p.ItemId != nil {
		opts = append(opts, listing.ActivityWithItemId(listing.ItemId(*p.ItemId)))
	}
	if p.Type != nil {
		opts = append(opts, listing.ActivityWithType(*p.Type))
	}
	if p.Account != nil {
		opts = append(opts, listing.ActivityWithAccount(*p.Account))
	}
	if p.Limit > 0 {
		opts = append(opts, listing.ActivityWithPagination(p.Offset, p.Limit))
	}

	activities, err := h.listing.FindActivities(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, activities)
}

func (h *handler) itemActivities(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	itemId, err := parseItemId(c)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, domain.ErrBadParamInput)
	}

	activities, err := h.listing.FindActivities(ctx, listing.ActivityWithItemId(itemId))
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, activities)
}

func (h *handler) errResp(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrListingNotFound), errors.Is(err, domain.ErrNotFound):
		return delivery.MakeJsonResp(c, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrUnauthorized):
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	case errors.Is(err, domain.ErrDuplicateListing):
		return delivery.MakeJsonResp(c, http.StatusConflict, err)
	case errors.Is(err, domain.ErrAssetTransferFailed), errors.Is(err, domain.ErrValueTransferFailed):
		return delivery.MakeJsonResp(c, http.StatusBadGateway, err)
	case errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrInvalidNumberFormat),
		errors.Is(err, domain.ErrPriceMismatch),
		errors.Is(err, domain.ErrFeeMismatch),
		errors.Is(err, domain.ErrAlreadyOwned),
		errors.Is(err, domain.ErrNotForSale),
		errors.Is(err, domain.ErrAlreadyForSale),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotSeller),
		errors.Is(err, domain.ErrAssetNotFound):
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}

func parseItemId(c echo.Context) (listing.ItemId, error) {
	id, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		return 0, err
	}
	return listing.ItemId(id), nil
}
