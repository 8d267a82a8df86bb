package usecase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/asset"
	mockAsset "github.com/treesdao/goapi/domain/asset/mocks"
	"github.com/treesdao/goapi/domain/feepolicy"
	mockFeepolicy "github.com/treesdao/goapi/domain/feepolicy/mocks"
	"github.com/treesdao/goapi/domain/listing"
	mockListing "github.com/treesdao/goapi/domain/listing/mocks"
	mockPayout "github.com/treesdao/goapi/domain/payout/mocks"
	mockQuery "github.com/treesdao/goapi/service/query/mocks"
)

var (
	mockCtx = ctx.Background()

	operator = domain.Address("0x1111111111111111111111111111111111111111")
	treasury = domain.Address("0x2222222222222222222222222222222222222222")
	alice    = domain.Address("0x3333333333333333333333333333333333333333")
	bob      = domain.Address("0x4444444444444444444444444444444444444444")

	chainId = domain.ChainId(1)
	ref     = asset.Ref{ChainId: chainId, Registry: "0x5555555555555555555555555555555555555555", AssetId: "1"}
)

type testsuite struct {
	suite.Suite

	listingRepo  *mockListing.Repo
	activityRepo *mockListing.ActivityRepo
	feePolicyUC  *mockFeepolicy.UseCase
	registry     *mockAsset.Registry
	payout       *mockPayout.Service
	txnRunner    *mockQuery.TxnRunner
	subject      *impl
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	s.listingRepo = &mockListing.Repo{}
	s.activityRepo = &mockListing.ActivityRepo{}
	s.feePolicyUC = &mockFeepolicy.UseCase{}
	s.registry = &mockAsset.Registry{}
	s.payout = &mockPayout.Service{}
	s.txnRunner = &mockQuery.TxnRunner{}
	s.subject = &impl{
		listingRepo:  s.listingRepo,
		activityRepo: s.activityRepo,
		feePolicyUC:  s.feePolicyUC,
		registry:     s.registry,
		payout:       s.payout,
		txnRunner:    s.txnRunner,
		operator:     operator,
		chainId:      chainId,
	}
}

func (s *testsuite) runTransactions() {
	s.txnRunner.
		On("RunWithTransaction", mock.Anything, mock.Anything).
		Return(func(c ctx.Ctx, run func(ctx.Ctx) error) error {
			return run(c)
		})
}

func (s *testsuite) TestCreateListing() {
	s.runTransactions()
	s.registry.On("Exists", mockCtx, ref).Return(true, nil)
	s.listingRepo.On("FindOneByRef", mockCtx, ref).Return(nil, domain.ErrNotFound)
	s.listingRepo.On("NextItemId", mockCtx).Return(listing.ItemId(1), nil)
	s.listingRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	s.activityRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	item, err := s.subject.CreateListing(mockCtx, operator, ref, "15000000000000000000")
	s.NoError(err)
	s.Equal(listing.ItemId(1), item.ItemId)
	s.Equal("15000000000000000000", item.Price)
	s.Equal("15", item.DisplayPrice)
	s.Equal(operator, item.Seller)
	s.Equal(operator, item.Owner)
	s.True(item.ForSale)
}

func (s *testsuite) TestCreateListingNotOperator() {
	_, err := s.subject.CreateListing(mockCtx, alice, ref, "1000")
	s.Equal(domain.ErrUnauthorized, err)
	s.listingRepo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *testsuite) TestCreateListingInvalidPrice() {
	_, err := s.subject.CreateListing(mockCtx, operator, ref, "0")
	s.Equal(domain.ErrInvalidPrice, err)

	_, err = s.subject.CreateListing(mockCtx, operator, ref, "not-a-number")
	s.Equal(domain.ErrInvalidPrice, err)
}

func (s *testsuite) TestCreateListingAssetNotFound() {
	s.registry.On("Exists", mockCtx, ref).Return(false, nil)

	_, err := s.subject.CreateListing(mockCtx, operator, ref, "1000")
	s.Equal(domain.ErrAssetNotFound, err)
}

func (s *testsuite) TestCreateListingDuplicate() {
	s.registry.On("Exists", mockCtx, ref).Return(true, nil)
	s.listingRepo.On("FindOneByRef", mockCtx, ref).Return(&listing.Listing{ItemId: 3, Ref: ref}, nil)

	_, err := s.subject.CreateListing(mockCtx, operator, ref, "1000")
	s.ErrorIs(err, domain.ErrDuplicateListing)
	s.listingRepo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *testsuite) forSaleListing(price string) *listing.Listing {
	return &listing.Listing{
		ItemId:  1,
		Ref:     ref,
		Price:   price,
		Seller:  operator,
		Owner:   operator,
		ForSale: true,
	}
}

func (s *testsuite) TestPurchase() {
	s.runTransactions()
	item := s.forSaleListing("15000000000000000000")
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)
	s.listingRepo.On("Update", mockCtx, item.ToId(), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Owner != nil && *p.Owner == alice &&
			p.ForSale != nil && !*p.ForSale &&
			p.Seller == nil
	})).Return(nil)
	s.activityRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	s.registry.On("Transfer", mockCtx, ref, operator, alice).Return(nil)
	s.payout.On("Send", mockCtx, chainId, operator, big.NewInt(0).SetUint64(15000000000000000000)).Return(nil)

	got, err := s.subject.Purchase(mockCtx, 1, alice, "15000000000000000000")
	s.NoError(err)
	s.Equal(alice, got.Owner)
	s.False(got.ForSale)
	s.Equal(operator, got.Seller)
	s.payout.AssertExpectations(s.T())
	s.registry.AssertExpectations(s.T())
}

func (s *testsuite) TestPurchaseListingNotFound() {
	s.listingRepo.On("FindOne", mockCtx, listing.Id{ItemId: 9}).Return(nil, domain.ErrNotFound)

	_, err := s.subject.Purchase(mockCtx, 9, alice, "1000")
	s.Equal(domain.ErrListingNotFound, err)
}

func (s *testsuite) TestPurchaseAlreadyOwned() {
	item := s.forSaleListing("1000")
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)

	_, err := s.subject.Purchase(mockCtx, 1, operator, "1000")
	s.Equal(domain.ErrAlreadyOwned, err)
}

func (s *testsuite) TestPurchaseNotForSale() {
	item := s.forSaleListing("1000")
	item.ForSale = false
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)

	_, err := s.subject.Purchase(mockCtx, 1, alice, "1000")
	s.Equal(domain.ErrNotForSale, err)
}

func (s *testsuite) TestPurchasePriceMismatch() {
	item := s.forSaleListing("15000000000000000000")
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)

	_, err := s.subject.Purchase(mockCtx, 1, alice, "14999999999999999999")
	s.Equal(domain.ErrPriceMismatch, err)

	_, err = s.subject.Purchase(mockCtx, 1, alice, "15000000000000000001")
	s.Equal(domain.ErrPriceMismatch, err)

	s.listingRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (s *testsuite) TestPurchaseAssetTransferFails() {
	s.runTransactions()
	item := s.forSaleListing("1000")
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)
	s.listingRepo.On("Update", mockCtx, item.ToId(), mock.Anything).Return(nil)
	s.activityRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	s.registry.On("Transfer", mockCtx, ref, operator, alice).Return(domain.ErrInternalServerError)

	_, err := s.subject.Purchase(mockCtx, 1, alice, "1000")
	s.Equal(domain.ErrAssetTransferFailed, err)
	s.payout.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *testsuite) TestPurchaseValueTransferFails() {
	s.runTransactions()
	item := s.forSaleListing("1000")
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)
	s.listingRepo.On("Update", mockCtx, item.ToId(), mock.Anything).Return(nil)
	s.activityRepo.On("Insert", mockCtx, mock.Anything).Return(nil)
	s.registry.On("Transfer", mockCtx, ref, operator, alice).Return(nil)
	s.payout.On("Send", mockCtx, chainId, operator, big.NewInt(1000)).Return(domain.ErrInternalServerError)

	_, err := s.subject.Purchase(mockCtx, 1, alice, "1000")
	s.Equal(domain.ErrValueTransferFailed, err)
	// the error comes out of the transaction closure, so the state write
	// above is aborted with it
	s.txnRunner.AssertCalled(s.T(), "RunWithTransaction", mock.Anything, mock.Anything)
}

func (s *testsuite) ownedListing(owner domain.Address) *listing.Listing {
	return &listing.Listing{
		ItemId:  1,
		Ref:     ref,
		Price:   "15000000000000000000",
		Seller:  operator,
		Owner:   owner,
		ForSale: false,
	}
}

func (s *testsuite) TestRelist() {
	s.runTransactions()
	item := s.ownedListing(alice)
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)
	s.feePolicyUC.On("Get", mockCtx, chainId).Return(&feepolicy.FeePolicy{
		ChainId:  chainId,
		Fee:      feepolicy.DefaultFee,
		Treasury: treasury,
	}, nil)
	s.payout.On("Send", mockCtx, chainId, treasury, big.NewInt(45000000000000)).Return(nil)
	s.listingRepo.On("Update", mockCtx, item.ToId(), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.Price != nil && *p.Price == "25000000000000000000" &&
			p.Seller != nil && *p.Seller == alice &&
			p.ForSale != nil && *p.ForSale
	})).Return(nil)
	s.activityRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	got, err := s.subject.Relist(mockCtx, 1, alice, "25000000000000000000", "45000000000000")
	s.NoError(err)
	s.True(got.ForSale)
	s.Equal(alice, got.Seller)
	s.Equal(alice, got.Owner)
	s.Equal("25000000000000000000", got.Price)
	s.Equal("25", got.DisplayPrice)
	s.payout.AssertExpectations(s.T())
}

func (s *testsuite) TestRelistOperatorPaysNoFee() {
	s.runTransactions()
	item := s.ownedListing(operator)
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)
	s.listingRepo.On("Update", mockCtx, item.ToId(), mock.Anything).Return(nil)
	s.activityRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	_, err := s.subject.Relist(mockCtx, 1, operator, "25000000000000000000", "0")
	s.NoError(err)
	s.feePolicyUC.AssertNotCalled(s.T(), "Get", mock.Anything, mock.Anything)
	s.payout.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *testsuite) TestRelistFeeMismatch() {
	item := s.ownedListing(alice)
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)
	s.feePolicyUC.On("Get", mockCtx, chainId).Return(&feepolicy.FeePolicy{
		ChainId:  chainId,
		Fee:      feepolicy.DefaultFee,
		Treasury: treasury,
	}, nil)

	_, err := s.subject.Relist(mockCtx, 1, alice, "25000000000000000000", "45000000000001")
	s.Equal(domain.ErrFeeMismatch, err)
	s.payout.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	s.listingRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
}

func (s *testsuite) TestRelistTreasuryPayoutFails() {
	s.runTransactions()
	item := s.ownedListing(alice)
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)
	s.feePolicyUC.On("Get", mockCtx, chainId).Return(&feepolicy.FeePolicy{
		ChainId:  chainId,
		Fee:      feepolicy.DefaultFee,
		Treasury: treasury,
	}, nil)
	s.payout.On("Send", mockCtx, chainId, treasury, big.NewInt(45000000000000)).Return(domain.ErrInternalServerError)

	_, err := s.subject.Relist(mockCtx, 1, alice, "25000000000000000000", "45000000000000")
	s.Equal(domain.ErrValueTransferFailed, err)
	// the fee moves before the listing flips, a failed fee aborts the whole
	// transaction with nothing written
	s.listingRepo.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything, mock.Anything)
	s.activityRepo.AssertNotCalled(s.T(), "Insert", mock.Anything, mock.Anything)
}

func (s *testsuite) TestRelistNotOwner() {
	item := s.ownedListing(alice)
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)

	_, err := s.subject.Relist(mockCtx, 1, bob, "1000", "0")
	s.Equal(domain.ErrNotOwner, err)
}

func (s *testsuite) TestRelistAlreadyForSale() {
	item := s.forSaleListing("1000")
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)

	_, err := s.subject.Relist(mockCtx, 1, operator, "1000", "0")
	s.Equal(domain.ErrAlreadyForSale, err)
}

func (s *testsuite) TestRelistInvalidPrice() {
	item := s.ownedListing(alice)
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)

	_, err := s.subject.Relist(mockCtx, 1, alice, "0", "45000000000000")
	s.Equal(domain.ErrInvalidPrice, err)
}

func (s *testsuite) TestDelist() {
	s.runTransactions()
	item := s.forSaleListing("1000")
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)
	s.listingRepo.On("Update", mockCtx, item.ToId(), mock.MatchedBy(func(p listing.Patchable) bool {
		return p.ForSale != nil && !*p.ForSale && p.Owner == nil && p.Seller == nil
	})).Return(nil)
	s.activityRepo.On("Insert", mockCtx, mock.Anything).Return(nil)

	got, err := s.subject.Delist(mockCtx, 1, operator)
	s.NoError(err)
	s.False(got.ForSale)
	s.Equal(operator, got.Seller)
	s.Equal(operator, got.Owner)
}

func (s *testsuite) TestDelistNotSeller() {
	item := s.forSaleListing("1000")
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)

	_, err := s.subject.Delist(mockCtx, 1, alice)
	s.Equal(domain.ErrNotSeller, err)
}

func (s *testsuite) TestDelistNotForSale() {
	item := s.ownedListing(alice)
	s.listingRepo.On("FindOne", mockCtx, item.ToId()).Return(item, nil)

	_, err := s.subject.Delist(mockCtx, 1, operator)
	s.Equal(domain.ErrNotForSale, err)
}

func (s *testsuite) TestQueries() {
	items := []*listing.Listing{s.forSaleListing("1000")}
	s.listingRepo.On("FindAll", mockCtx).Return(items, nil).Once()
	s.listingRepo.On("FindAll", mockCtx, mock.Anything).Return(items, nil).Twice()

	got, err := s.subject.AllItems(mockCtx)
	s.NoError(err)
	s.Equal(items, got)

	got, err = s.subject.ItemsForSale(mockCtx)
	s.NoError(err)
	s.Equal(items, got)

	got, err = s.subject.ItemsOwnedBy(mockCtx, alice)
	s.NoError(err)
	s.Equal(items, got)
}
