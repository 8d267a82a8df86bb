package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/feepolicy"
	"github.com/treesdao/goapi/domain/feepolicy/mocks"
)

var (
	operator = domain.Address("0x1111111111111111111111111111111111111111")
	treasury = domain.Address("0x2222222222222222222222222222222222222222")
	stranger = domain.Address("0x3333333333333333333333333333333333333333")
)

type testsuite struct {
	suite.Suite

	repo *mocks.Repo
	im   feepolicy.UseCase
}

func Test(t *testing.T) {
	suite.Run(t, new(testsuite))
}

func (s *testsuite) SetupTest() {
	s.repo = &mocks.Repo{}
	s.im = New(&FeePolicyUseCaseCfg{
		Repo:     s.repo,
		Operator: operator,
		Treasury: treasury,
	})
}

func (s *testsuite) TestGetDefault() {
	c := ctx.Background()

	s.repo.On("FindOne", c, feepolicy.Id{ChainId: 1}).Return(nil, domain.ErrNotFound).Once()

	policy, err := s.im.Get(c, 1)
	s.NoError(err)
	s.Equal(feepolicy.DefaultFee, policy.Fee)
	s.Equal(treasury, policy.Treasury)
}

func (s *testsuite) TestGetStored() {
	c := ctx.Background()

	stored := &feepolicy.FeePolicy{ChainId: 1, Fee: "100", Treasury: treasury}
	s.repo.On("FindOne", c, feepolicy.Id{ChainId: 1}).Return(stored, nil).Once()

	policy, err := s.im.Get(c, 1)
	s.NoError(err)
	s.Equal(stored, policy)
}

func (s *testsuite) TestSetFee() {
	c := ctx.Background()

	s.repo.On("FindOne", c, feepolicy.Id{ChainId: 1}).Return(nil, domain.ErrNotFound).Once()
	s.repo.On("Upsert", c, mock.MatchedBy(func(p *feepolicy.FeePolicy) bool {
		return p.ChainId == 1 && p.Fee == "100" && p.Treasury == treasury
	})).Return(nil).Once()

	policy, err := s.im.SetFee(c, operator, 1, "100")
	s.NoError(err)
	s.Equal("100", policy.Fee)
	s.repo.AssertExpectations(s.T())
}

func (s *testsuite) TestSetFeeNotOperator() {
	c := ctx.Background()

	_, err := s.im.SetFee(c, stranger, 1, "100")
	s.Equal(domain.ErrUnauthorized, err)
	s.repo.AssertNotCalled(s.T(), "Upsert", mock.Anything, mock.Anything)
}

func (s *testsuite) TestSetFeeBadAmount() {
	c := ctx.Background()

	_, err := s.im.SetFee(c, operator, 1, "-1")
	s.Equal(domain.ErrInvalidNumberFormat, err)

	_, err = s.im.SetFee(c, operator, 1, "abc")
	s.Equal(domain.ErrInvalidNumberFormat, err)
}
