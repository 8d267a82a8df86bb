package contract

import (
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	baseabi "github.com/treesdao/goapi/base/abi"
	bCtx "github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/log"
	"github.com/treesdao/goapi/domain"
	"github.com/treesdao/goapi/domain/asset"
	"github.com/treesdao/goapi/service/chain"
)

// Erc721Registry resolves certificate ownership against erc721 registry
// contracts and moves certificates with the custodial signer.
type Erc721Registry struct {
	chainService      chain.Client
	abi               ethabi.ABI
	erc721InterfaceId [4]byte
}

func NewErc721Registry(chainService chain.Client) asset.Registry {
	var interfaceId [4]byte
	copy(interfaceId[:], common.Hex2Bytes("80ac58cd"))
	return &Erc721Registry{
		abi:               baseabi.ERC721TokenABI,
		chainService:      chainService,
		erc721InterfaceId: interfaceId,
	}
}

func (e *Erc721Registry) Supports721Interface(ctx bCtx.Ctx, chainId domain.ChainId, addr domain.Address) (bool, error) {
	method := "supportsInterface"
	unpacked, err := e.chainService.Call(ctx, int32(chainId), common.HexToAddress(string(addr)), nil, e.abi, method, e.erc721InterfaceId)
	if err != nil {
		return false, err
	}
	return unpacked[0].(bool), nil
}

func (e *Erc721Registry) Exists(ctx bCtx.Ctx, ref asset.Ref) (bool, error) {
	ok, err := e.Supports721Interface(ctx, ref.ChainId, ref.Registry)
	if err == chain.ErrUnsupportedChain {
		return false, err
	} else if err != nil || !ok {
		// supportsInterface reverts on contracts without erc165, either way
		// the address is not an erc721 registry and cannot hold certificates
		return false, nil
	}
	tokenId, err := ref.AssetId.ToBigInt()
	if err != nil {
		return false, err
	}
	method := "ownerOf"
	_, err = e.chainService.Call(ctx, int32(ref.ChainId), common.HexToAddress(string(ref.Registry)), nil, e.abi, method, tokenId)
	if err == chain.ErrUnsupportedChain {
		return false, err
	} else if err != nil {
		// ownerOf reverts for nonexistent certificates
		return false, nil
	}
	return true, nil
}

func (e *Erc721Registry) OwnerOf(ctx bCtx.Ctx, ref asset.Ref) (domain.Address, error) {
	tokenId, err := ref.AssetId.ToBigInt()
	if err != nil {
		return "", err
	}
	method := "ownerOf"
	unpacked, err := e.chainService.Call(ctx, int32(ref.ChainId), common.HexToAddress(string(ref.Registry)), nil, e.abi, method, tokenId)
	if err != nil {
		return "", err
	}
	return domain.Address(unpacked[0].(common.Address).String()).ToLower(), nil
}

func (e *Erc721Registry) Transfer(ctx bCtx.Ctx, ref asset.Ref, from, to domain.Address) error {
	tokenId, err := ref.AssetId.ToBigInt()
	if err != nil {
		return err
	}
	method := "transferFrom"
	txHash, err := e.chainService.Transact(
		ctx,
		int32(ref.ChainId),
		common.HexToAddress(string(ref.Registry)),
		e.abi,
		method,
		common.HexToAddress(string(from)),
		common.HexToAddress(string(to)),
		tokenId,
	)
	if err != nil {
		ctx.WithFields(log.Fields{
			"err":      err,
			"registry": ref.Registry,
			"assetId":  ref.AssetId,
		}).Error("chainService.Transact failed")
		return err
	}
	ctx.WithFields(log.Fields{
		"registry": ref.Registry,
		"assetId":  ref.AssetId,
		"from":     from,
		"to":       to,
		"tx":       txHash.Hex(),
	}).Info("certificate transfer sent")
	return nil
}
