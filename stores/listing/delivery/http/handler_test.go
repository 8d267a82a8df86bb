package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/listing"
	mockListing "github.com/treesdao/goapi/domain/listing/mocks"
	mmiddleware "github.com/treesdao/goapi/middleware"
	authMiddleware "github.com/treesdao/goapi/stores/auth/delivery/http/middleware"
	authUsecase "github.com/treesdao/goapi/stores/auth/usecase"
)

type testsuite struct {
	suite.Suite

	uc *mockListing.UseCase
	e  *echo.Echo
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	// the activity feed route wants the http cache wired up. the redis layer
	// is never touched because no test here requests a cached route.
	mmiddleware.SetupCache(nil)

	s.uc = &mockListing.UseCase{}
	s.e = echo.New()
	s.e.Use(mmiddleware.InitMiddleware().AddContext())
	New(s.e, authMiddleware.New(authUsecase.New("secret")), s.uc, 1)
}

func (s *testsuite) get(path string) string {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	return rec.Body.String()
}

func (s *testsuite) TestIndexReadsThrough() {
	onSale := []*listing.Listing{{ItemId: 1, ForSale: true}}
	sold := []*listing.Listing{{ItemId: 1, ForSale: false}}
	s.uc.On("AllItems", mock.Anything).Return(onSale, nil).Once()
	s.uc.On("AllItems", mock.Anything).Return(sold, nil).Once()

	body := s.get("/listings")
	s.Contains(body, `"forSale":true`)

	// a lifecycle transition has to show up on the very next read, the
	// index is never served from a cache
	body = s.get("/listings")
	s.Contains(body, `"forSale":false`)
	s.uc.AssertNumberOfCalls(s.T(), "AllItems", 2)
}

func (s *testsuite) TestIndexFilters() {
	owner := domain.Address("0x3333333333333333333333333333333333333333")
	items := []*listing.Listing{{ItemId: 1}}
	s.uc.On("ItemsForSale", mock.Anything).Return(items, nil)
	s.uc.On("ItemsOwnedBy", mock.Anything, owner).Return(items, nil)

	s.get("/listings?forSale=true")
	s.uc.AssertCalled(s.T(), "ItemsForSale", mock.Anything)

	s.get("/listings?owner=" + string(owner))
	s.uc.AssertCalled(s.T(), "ItemsOwnedBy", mock.Anything, owner)
}

func (s *testsuite) TestShowNotFound() {
	s.uc.On("GetListing", mock.Anything, listing.ItemId(9)).Return(nil, domain.ErrListingNotFound)

	req := httptest.NewRequest(http.MethodGet, "/listings/9", nil)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	s.Equal(http.StatusNotFound, rec.Code)
}
