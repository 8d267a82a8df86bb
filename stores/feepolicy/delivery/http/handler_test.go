package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/treesdao/goapi/base/ctx"
	bValidator "github.com/treesdao/goapi/base/validator"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/feepolicy"
	mockFeepolicy "github.com/treesdao/goapi/domain/feepolicy/mocks"
	mmiddleware "github.com/treesdao/goapi/middleware"
	authMiddleware "github.com/treesdao/goapi/stores/auth/delivery/http/middleware"
	authUsecase "github.com/treesdao/goapi/stores/auth/usecase"
)

var caller = domain.Address("0x3333333333333333333333333333333333333333")

type testsuite struct {
	suite.Suite

	uc    *mockFeepolicy.UseCase
	e     *echo.Echo
	token string
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	auth := authUsecase.New("secret")
	token, err := auth.SignToken(ctx.Background(), caller)
	s.Require().NoError(err)
	s.token = token

	s.uc = &mockFeepolicy.UseCase{}
	s.e = echo.New()
	s.e.Validator = bValidator.NewCustomValidator(validator.New())
	s.e.Use(mmiddleware.InitMiddleware().AddContext())
	New(s.e, authMiddleware.New(auth), s.uc, 1)
}

func (s *testsuite) putFee(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/fee", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testsuite) TestSetFee() {
	s.uc.On("SetFee", mock.Anything, caller, domain.ChainId(1), "100").Return(&feepolicy.FeePolicy{
		ChainId: 1,
		Fee:     "100",
	}, nil)

	rec := s.putFee(`{"fee":"100"}`)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *testsuite) TestSetFeeNotOperator() {
	s.uc.On("SetFee", mock.Anything, caller, domain.ChainId(1), "100").Return(nil, domain.ErrUnauthorized)

	rec := s.putFee(`{"fee":"100"}`)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *testsuite) TestSetFeeBadAmount() {
	s.uc.On("SetFee", mock.Anything, caller, domain.ChainId(1), "abc").Return(nil, domain.ErrInvalidNumberFormat)

	rec := s.putFee(`{"fee":"abc"}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}
