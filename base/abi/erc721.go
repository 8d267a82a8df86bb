package abi

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

var ERC721TokenABI abi.ABI

var erc721ABI = `[{"type":"event","anonymous":false,"name":"Transfer","inputs":[{"type":"address","name":"_from","indexed":true},{"type":"address","name":"_to","indexed":true},{"type":"uint256","name":"_tokenId","indexed":true}]},{"type":"function","name":"ownerOf","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"_tokenId"}],"outputs":[{"type":"address"}]},{"type":"function","name":"getApproved","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"uint256","name":"_tokenId"}],"outputs":[{"type":"address"}]},{"type":"function","name":"isApprovedForAll","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"_owner"},{"type":"address","name":"_operator"}],"outputs":[{"type":"bool"}]},{"type":"function","name":"transferFrom","constant":false,"stateMutability":"nonpayable","payable":false,"inputs":[{"type":"address","name":"_from"},{"type":"address","name":"_to"},{"type":"uint256","name":"_tokenId"}],"outputs":[]},{"type":"function","name":"supportsInterface","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"bytes4","name":"interfaceID"}],"outputs":[{"type":"bool"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		panic("Failed to parse erc721 abi")
	}
	ERC721TokenABI = _abi
}

type Erc721TransferLog struct {
	From    common.Address // indexed
	To      common.Address // indexed
	TokenId *big.Int       // indexed
}

func ToErc721TransferLog(log *types.Log) (*Erc721TransferLog, error) {
	var transfer Erc721TransferLog
	transfer.From = common.BytesToAddress(log.Topics[1].Bytes())
	transfer.To = common.BytesToAddress(log.Topics[2].Bytes())
	transfer.TokenId = new(big.Int).SetBytes(log.Topics[3].Bytes())
	return &transfer, nil
}
