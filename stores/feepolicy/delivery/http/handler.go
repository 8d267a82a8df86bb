package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/delivery"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/feepolicy"
	authMiddleware "github.com/treesdao/goapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	feepolicy      feepolicy.UseCase
	defaultChainId domain.ChainId
}

// New registers the fee policy endpoints. Reads are public, updates
// require a signed-in operator.
func New(e *echo.Echo, authMiddleware *authMiddleware.AuthMiddleware, feepolicy feepolicy.UseCase, defaultChainId domain.ChainId) {
	h := &handler{feepolicy, defaultChainId}

	g := e.Group("/fee")

	g.GET("", h.get)
	g.PUT("", h.set, authMiddleware.Auth())
}

func (h *handler) get(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	type params struct {
		ChainId *domain.ChainId `query:"chainId"`
	}

	p := &params{}

	if err := c.Bind(p); err != nil {
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	}

	chainId := h.defaultChainId
	if p.ChainId != nil {
		chainId = *p.ChainId
	}

	policy, err := h.feepolicy.Get(ctx, chainId)
	if err != nil {
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}

	return delivery.MakeJsonResp(c, http.StatusOK, policy)
}

func (h *handler) set(c echo.Context) error {
	ctx := c.Get("ctx").(ctx.Ctx)

	caller, ok := c.Get("address").(domain.Address)
	if !ok {
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, domain.ErrUnauthorized)
	}

	type params struct {
		ChainId *domain.ChainId `json:"chainId"`
		Fee     string         `json:"fee" validate:"required"`
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

	policy, err := h.feepolicy.SetFee(ctx, caller, chainId, p.Fee)
	switch err {
	case nil:
		return delivery.MakeJsonResp(c, http.StatusOK, policy)
	case domain.ErrUnauthorized:
		return delivery.MakeJsonResp(c, http.StatusUnauthorized, err)
	case domain.ErrInvalidNumberFormat:
		return delivery.MakeJsonResp(c, http.StatusBadRequest, err)
	default:
		return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
	}
}
