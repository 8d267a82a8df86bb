package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	bCtx "github.com/treesdao/goapi/base/ctx"
	"github.com/treesdao/goapi/base/log"
)

var ErrUnsupportedChain = errors.New("unsupported chain")

type ClientCfg struct {
	RpcUrls map[int32]string

	// SignerKeys holds per chain hex encoded private keys of the custodial
	// signer used for Transact and SendValue
	SignerKeys map[int32]string
}

type Client interface {
	Call(bCtx.Ctx, int32, common.Address, *big.Int, abi.ABI, string, ...interface{}) ([]interface{}, error)
	Transact(bCtx.Ctx, int32, common.Address, abi.ABI, string, ...interface{}) (common.Hash, error)
	SendValue(bCtx.Ctx, int32, common.Address, *big.Int) (common.Hash, error)
}

type signer struct {
	key  *ecdsa.PrivateKey
	addr common.Address
}

type clientImpl struct {
	clients map[int32]*ethclient.Client
	signers map[int32]*signer
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	var (
		anyerr error
	)
	clients := make(map[int32]*ethclient.Client)
	for chainId, url := range cfg.RpcUrls {
		client, err := ethclient.DialContext(ctx, url)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
				"url":     url,
			}).Warn("failed to dial rpc")
			// soft warning, still let the server start
			continue
		}
		clients[chainId] = client
	}
	signers := make(map[int32]*signer)
	for chainId, hexkey := range cfg.SignerKeys {
		key, err := crypto.HexToECDSA(hexkey)
		if err != nil {
			anyerr = err
			ctx.WithFields(log.Fields{
				"err":     err,
				"chainId": chainId,
			}).Warn("failed to parse signer key")
			continue
		}
		signers[chainId] = &signer{
			key:  key,
			addr: crypto.PubkeyToAddress(key.PublicKey),
		}
	}
	return &clientImpl{
		clients: clients,
		signers: signers,
	}, anyerr
}

func (c *clientImpl) Call(ctx bCtx.Ctx, chainId int32, addr common.Address, blk *big.Int, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return nil, ErrUnsupportedChain
	}

	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := client.CallContract(ctx, msg, blk)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Transact(ctx bCtx.Ctx, chainId int32, addr common.Address, _abi abi.ABI, method string, params ...interface{}) (common.Hash, error) {
	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return common.Hash{}, err
	}
	return c.sendTx(ctx, chainId, addr, nil, data)
}

func (c *clientImpl) SendValue(ctx bCtx.Ctx, chainId int32, to common.Address, amount *big.Int) (common.Hash, error) {
	return c.sendTx(ctx, chainId, to, amount, nil)
}

func (c *clientImpl) sendTx(ctx bCtx.Ctx, chainId int32, to common.Address, amount *big.Int, data []byte) (common.Hash, error) {
	client, ok := c.clients[chainId]
	if !ok {
		return common.Hash{}, ErrUnsupportedChain
	}
	sgn, ok := c.signers[chainId]
	if !ok {
		return common.Hash{}, ErrUnsupportedChain
	}

	nonce, err := client.PendingNonceAt(ctx, sgn.addr)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return common.Hash{}, err
	}
	gasPrice, err := client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return common.Hash{}, err
	}
	msg := ethereum.CallMsg{
		From:  sgn.addr,
		To:    &to,
		Value: amount,
		Data:  data,
	}
	gasLimit, err := client.EstimateGas(ctx, msg)
	if err != nil {
		ctx.WithField("err", err).Error("client.EstimateGas failed")
		return common.Hash{}, err
	}

	tx := types.NewTransaction(nonce, to, amount, gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(big.NewInt(int64(chainId))), sgn.key)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return common.Hash{}, err
	}
	if err := client.SendTransaction(ctx, signedTx); err != nil {
		ctx.WithFields(log.Fields{
			"err": err,
			"tx":  signedTx.Hash().Hex(),
		}).Error("client.SendTransaction failed")
		return common.Hash{}, err
	}
	return signedTx.Hash(), nil
}
