package contract

import (
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/domain/asset"
	"github.com/treesdao/goapi/service/chain"
	mockChain "github.com/treesdao/goapi/service/chain/mocks"
)

var (
	mockCtx = ctx.Background()

	testRef = asset.Ref{
		ChainId:  1,
		Registry: "0x5555555555555555555555555555555555555555",
		AssetId:  "5",
	}
)

type registrySuite struct {
	suite.Suite

	client  *mockChain.Client
	subject asset.Registry
}

func Test(t *testing.T) {
	suite.Run(t, new(registrySuite))
}

func (s *registrySuite) SetupTest() {
	s.client = &mockChain.Client{}
	s.subject = NewErc721Registry(s.client)
}

func (s *registrySuite) registryAddr() common.Address {
	return common.HexToAddress(string(testRef.Registry))
}

func (s *registrySuite) mockSupportsInterface(supported bool, err error) {
	ret := []interface{}{supported}
	if err != nil {
		ret = nil
	}
	s.client.
		On("Call", mockCtx, int32(1), s.registryAddr(), mock.Anything, mock.Anything, "supportsInterface", mock.Anything).
		Return(ret, err)
}

func (s *registrySuite) TestExists() {
	s.mockSupportsInterface(true, nil)
	s.client.
		On("Call", mockCtx, int32(1), s.registryAddr(), mock.Anything, mock.Anything, "ownerOf", mock.Anything).
		Return([]interface{}{common.HexToAddress("0x3333333333333333333333333333333333333333")}, nil)

	ok, err := s.subject.Exists(mockCtx, testRef)
	s.NoError(err)
	s.True(ok)
}

func (s *registrySuite) TestExistsNotErc721() {
	s.mockSupportsInterface(false, nil)

	ok, err := s.subject.Exists(mockCtx, testRef)
	s.NoError(err)
	s.False(ok)
	// ownerOf is never probed against a contract that is not a registry
	s.client.AssertNumberOfCalls(s.T(), "Call", 1)
}

func (s *registrySuite) TestExistsNoErc165() {
	s.mockSupportsInterface(false, fmt.Errorf("execution reverted"))

	ok, err := s.subject.Exists(mockCtx, testRef)
	s.NoError(err)
	s.False(ok)
	s.client.AssertNumberOfCalls(s.T(), "Call", 1)
}

func (s *registrySuite) TestExistsMissingCertificate() {
	s.mockSupportsInterface(true, nil)
	s.client.
		On("Call", mockCtx, int32(1), s.registryAddr(), mock.Anything, mock.Anything, "ownerOf", mock.Anything).
		Return(nil, fmt.Errorf("execution reverted"))

	ok, err := s.subject.Exists(mockCtx, testRef)
	s.NoError(err)
	s.False(ok)
}

func (s *registrySuite) TestExistsUnsupportedChain() {
	s.mockSupportsInterface(false, chain.ErrUnsupportedChain)

	_, err := s.subject.Exists(mockCtx, testRef)
	s.Equal(chain.ErrUnsupportedChain, err)
}
