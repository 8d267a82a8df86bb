package usecase

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain"
)

type testsuite struct {
	suite.Suite

	im domain.AuthUsecase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	s.im = New("secret")
}

func (s *testsuite) TestSignAndParse() {
	c := ctx.Background()
	address := domain.Address("0x939ae6A4C8dfDBB1f7085189574F0A938013952A")

	tkn, err := s.im.SignToken(c, address)
	s.NoError(err)
	s.NotEmpty(tkn)

	parsed, err := s.im.ParseToken(c, tkn)
	s.NoError(err)
	s.Equal(address.ToLowerStr(), parsed)
}

func (s *testsuite) TestParseInvalidToken() {
	c := ctx.Background()

	_, err := s.im.ParseToken(c, "not-a-token")
	s.Error(err)

	other := New("other-secret")
	tkn, err := other.SignToken(c, "0x939ae6a4c8dfdbb1f7085189574f0a938013952a")
	s.NoError(err)

	_, err = s.im.ParseToken(c, tkn)
	s.Error(err)
}
