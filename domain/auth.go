package domain

import (
	"github.com/golang-jwt/jwt"

	"github.com/treesdao/goapi/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"address"`
	jwt.StandardClaims
}

type AuthUsecase interface {
	SignToken(ctx ctx.Ctx, address Address) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (string, error)
}
