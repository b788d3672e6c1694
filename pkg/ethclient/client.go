/*
 * Copyright © 2026 Intuition Systems, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
 * the License. You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
 * an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations under the License.
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package ethclient

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/0xIntuition/intuition-go/internal/confutil"
	"github.com/0xIntuition/intuition-go/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"golang.org/x/crypto/sha3"
)

// Higher level client interface to the base Ethereum ledger for TX submission and queries.
// See the indexer package for the events side of the house.
type EthClient interface {
	Close()
	ABI(ctx context.Context, a abi.ABI) (ABIClient, error)
	ABIJSON(ctx context.Context, abiJson []byte) (ABIClient, error)
	ABIFunction(ctx context.Context, functionABI *abi.Entry) (_ ABIFunctionClient, err error)
	MustABIJSON(abiJson []byte) ABIClient
	ChainID() int64
	Signer() Signer

	// Below are raw functions that the ABI() above provides wrappers for
	GasPrice(ctx context.Context) (gasPrice *ethtypes.HexInteger, err error)
	GetBalance(ctx context.Context, address *ethtypes.Address0xHex, block string) (balance *ethtypes.HexInteger, err error)
	GasEstimate(ctx context.Context, tx *ethsigner.Transaction) (gasLimit *ethtypes.HexInteger, err error)
	GetTransactionCount(ctx context.Context, fromAddr *ethtypes.Address0xHex) (transactionCount *ethtypes.HexUint64, err error)
	GetTransactionReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*TransactionReceipt, error)
	BlockNumber(ctx context.Context) (blockNumber ethtypes.HexUint64, err error)
	GetLogs(ctx context.Context, filter *LogFilter) (logs []*LogJSONRPC, err error)
	SubscribeLogs(ctx context.Context, filter *LogFilter) (sub rpcbackend.Subscription, err error)
	CallContract(ctx context.Context, tx *ethsigner.Transaction, block string) (data ethtypes.HexBytes0xPrefix, err error)
	BuildRawTransaction(ctx context.Context, txVersion EthTXVersion, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error)
	SendRawTransaction(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error)
}

type ethClient struct {
	chainID           int64
	gasEstimateFactor float64
	rpc               rpcbackend.RPC
	signer            Signer
}

// WrapRPCClient builds an EthClient over an already constructed JSON/RPC backend.
// Most callers use NewEthClientFactory instead, which handles the HTTP/WS pair.
func WrapRPCClient(ctx context.Context, signer Signer, rpc rpcbackend.RPC, conf *Config) (EthClient, error) {
	ec := &ethClient{
		signer:            signer,
		rpc:               rpc,
		gasEstimateFactor: confutil.Float64Min(conf.EstimateGasFactor, 1.0, *Defaults.EstimateGasFactor),
	}
	if err := ec.setupChainID(ctx); err != nil {
		return nil, err
	}
	return ec, nil
}

func (ec *ethClient) Close() {
	wsRPC, isWS := ec.rpc.(rpcbackend.WebSocketRPCClient)
	if isWS {
		wsRPC.Close()
	}
}

func (ec *ethClient) ChainID() int64 {
	return ec.chainID
}

func (ec *ethClient) Signer() Signer {
	return ec.signer
}

func (ec *ethClient) setupChainID(ctx context.Context) error {
	var chainID ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &chainID, "eth_chainId"); rpcErr != nil {
		log.L(ctx).Errorf("eth_chainId failed: %+v", rpcErr)
		return i18n.WrapError(ctx, rpcErr.Error(), msgs.MsgEthClientChainIDFailed)
	}
	ec.chainID = int64(chainID.Uint64())
	return nil
}

func (ec *ethClient) CallContract(ctx context.Context, tx *ethsigner.Transaction, block string) (data ethtypes.HexBytes0xPrefix, err error) {

	if tx.From == nil && ec.signer != nil {
		tx.From = json.RawMessage(fmt.Sprintf(`"%s"`, ec.signer.Address()))
	}

	if rpcErr := ec.rpc.CallRPC(ctx, &data, "eth_call", tx, block); rpcErr != nil {
		log.L(ctx).Errorf("eth_call failed: %+v", rpcErr)
		return nil, ec.mapCallError(ctx, rpcErr)
	}

	return data, nil
}

// mapCallError unpacks the `revert("some error")` encoding out of the error data
// where the node provides it, so callers see the contract's message
func (ec *ethClient) mapCallError(ctx context.Context, rpcErr *rpcbackend.RPCError) error {
	var revertData string
	_ = json.Unmarshal(rpcErr.Data.Bytes(), &revertData)
	returnDataBytes, _ := hex.DecodeString(padHexData(revertData))
	if len(returnDataBytes) > 4 && bytes.Equal(returnDataBytes[0:4], defaultErrorID) {
		if value, decodeErr := defaultError.DecodeCallDataCtx(ctx, returnDataBytes); decodeErr == nil {
			return i18n.NewError(ctx, msgs.MsgEthClientCallReverted, value.Children[0].Value)
		}
	}
	return rpcErr.Error()
}

func (ec *ethClient) GetBalance(ctx context.Context, address *ethtypes.Address0xHex, block string) (*ethtypes.HexInteger, error) {
	var addressBalance ethtypes.HexInteger

	if rpcErr := ec.rpc.CallRPC(ctx, &addressBalance, "eth_getBalance", address, block); rpcErr != nil {
		log.L(ctx).Errorf("eth_getBalance failed: %+v", rpcErr)
		return nil, rpcErr.Error()
	}
	return &addressBalance, nil
}

func (ec *ethClient) GasPrice(ctx context.Context) (*ethtypes.HexInteger, error) {
	// currently only support London style gas price
	// For EIP1559, will need to add support for `eth_maxPriorityFeePerGas`
	var gasPrice ethtypes.HexInteger

	if rpcErr := ec.rpc.CallRPC(ctx, &gasPrice, "eth_gasPrice"); rpcErr != nil {
		log.L(ctx).Errorf("eth_gasPrice failed: %+v", rpcErr)
		return nil, rpcErr.Error()
	}
	return &gasPrice, nil
}

func (ec *ethClient) GetTransactionReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*TransactionReceipt, error) {
	var receipt *TransactionReceipt
	rpcErr := ec.rpc.CallRPC(ctx, &receipt, "eth_getTransactionReceipt", txHash)
	if rpcErr != nil {
		return nil, rpcErr.Error()
	}
	if receipt == nil {
		return nil, i18n.NewError(ctx, msgs.MsgEthClientReceiptNotAvailable, txHash)
	}
	return receipt, nil
}

func (ec *ethClient) GasEstimate(ctx context.Context, tx *ethsigner.Transaction) (*ethtypes.HexInteger, error) {
	var gasEstimate ethtypes.HexInteger
	if rpcErr := ec.rpc.CallRPC(ctx, &gasEstimate, "eth_estimateGas", tx); rpcErr != nil {
		log.L(ctx).Errorf("eth_estimateGas failed: %+v", rpcErr)
		return nil, rpcErr.Error()
	}
	return &gasEstimate, nil
}

func (ec *ethClient) GetTransactionCount(ctx context.Context, fromAddr *ethtypes.Address0xHex) (*ethtypes.HexUint64, error) {
	var transactionCount ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &transactionCount, "eth_getTransactionCount", fromAddr, "latest"); rpcErr != nil {
		log.L(ctx).Errorf("eth_getTransactionCount(%s) failed: %+v", fromAddr, rpcErr)
		return nil, rpcErr.Error()
	}
	return &transactionCount, nil
}

func (ec *ethClient) BlockNumber(ctx context.Context) (ethtypes.HexUint64, error) {
	var blockNumber ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &blockNumber, "eth_blockNumber"); rpcErr != nil {
		log.L(ctx).Errorf("eth_blockNumber failed: %+v", rpcErr)
		return 0, rpcErr.Error()
	}
	return blockNumber, nil
}

func (ec *ethClient) GetLogs(ctx context.Context, filter *LogFilter) ([]*LogJSONRPC, error) {
	var logs []*LogJSONRPC
	if rpcErr := ec.rpc.CallRPC(ctx, &logs, "eth_getLogs", filter); rpcErr != nil {
		log.L(ctx).Errorf("eth_getLogs failed: %+v", rpcErr)
		return nil, rpcErr.Error()
	}
	return logs, nil
}

func (ec *ethClient) SubscribeLogs(ctx context.Context, filter *LogFilter) (rpcbackend.Subscription, error) {
	wsRPC, isWS := ec.rpc.(rpcbackend.WebSocketRPCClient)
	if !isWS {
		return nil, i18n.NewError(ctx, msgs.MsgEthClientNotWebSocket)
	}
	// The subscription filter is the getLogs filter minus the block range
	sub, rpcErr := wsRPC.Subscribe(ctx, "logs", &LogFilter{
		Address: filter.Address,
		Topics:  filter.Topics,
	})
	if rpcErr != nil {
		log.L(ctx).Errorf("eth_subscribe(logs) failed: %+v", rpcErr)
		return nil, rpcErr.Error()
	}
	return sub, nil
}

func (ec *ethClient) BuildRawTransaction(ctx context.Context, txVersion EthTXVersion, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	fromAddr := ec.signer.Address()
	tx.From = json.RawMessage(fmt.Sprintf(`"%s"`, fromAddr))

	// Trivial nonce management in the client - just get the current nonce for this key, from the local node mempool, for each TX
	if tx.Nonce == nil {
		txNonce, err := ec.GetTransactionCount(ctx, fromAddr)
		if err != nil {
			log.L(ctx).Errorf("eth_getTransactionCount(%s) failed: %+v", fromAddr, err)
			return nil, err
		}
		tx.Nonce = ethtypes.NewHexInteger(big.NewInt(int64(txNonce.Uint64())))
	}

	if tx.GasLimit == nil {
		// Estimate gas before submission
		gasEstimate, err := ec.GasEstimate(ctx, tx)
		if err != nil {
			log.L(ctx).Errorf("eth_estimateGas failed: %+v", err)
			return nil, err
		}
		// If that went well, submit with a bump on the estimation
		gasLimitFactored := new(big.Float).SetInt(gasEstimate.BigInt())
		gasLimitFactored = gasLimitFactored.Mul(gasLimitFactored, big.NewFloat(ec.gasEstimateFactor))
		gasLimit, _ := gasLimitFactored.Int(nil)
		tx.GasLimit = ethtypes.NewHexInteger(gasLimit)
	}

	// Sign
	var sigPayload *ethsigner.TransactionSignaturePayload
	switch txVersion {
	case EIP1559:
		sigPayload = tx.SignaturePayloadEIP1559(ec.chainID)
	case LEGACY_EIP155:
		sigPayload = tx.SignaturePayloadLegacyEIP155(ec.chainID)
	case LEGACY_ORIGINAL:
		sigPayload = tx.SignaturePayloadLegacyOriginal()
	default:
		return nil, i18n.NewError(ctx, msgs.MsgEthClientInvalidTXVersion, txVersion)
	}
	hash := sha3.NewLegacyKeccak256()
	_, _ = hash.Write(sigPayload.Bytes())
	compactRSV, err := ec.signer.Sign(ctx, hash.Sum(nil))
	var sig *secp256k1.SignatureData
	if err == nil {
		sig, err = secp256k1.DecodeCompactRSV(ctx, compactRSV)
	}
	var rawTX []byte
	if err == nil {
		switch txVersion {
		case EIP1559:
			rawTX, err = tx.FinalizeEIP1559WithSignature(sigPayload, sig)
		case LEGACY_EIP155:
			rawTX, err = tx.FinalizeLegacyEIP155WithSignature(sigPayload, sig, ec.chainID)
		case LEGACY_ORIGINAL:
			rawTX, err = tx.FinalizeLegacyOriginalWithSignature(sigPayload, sig)
		}
	}
	if err != nil {
		log.L(ctx).Errorf("signing failed (addr=%s): %s", fromAddr, err)
		return nil, err
	}
	return rawTX, nil
}

func (ec *ethClient) SendRawTransaction(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {

	// Submit
	var txHash ethtypes.HexBytes0xPrefix
	if rpcErr := ec.rpc.CallRPC(ctx, &txHash, "eth_sendRawTransaction", rawTX); rpcErr != nil {
		reason := MapError(rpcErr.Error())
		addr, decodedTX, err := ethsigner.RecoverRawTransaction(ctx, rawTX, ec.chainID)
		if err != nil {
			log.L(ctx).Errorf("Invalid transaction build during signing: %s", err)
		} else {
			log.L(ctx).Errorf("Rejected TX (from=%s reason=%s): %+v", addr, reason, logJSON(decodedTX.Transaction))
		}
		if reason != "" {
			return nil, fmt.Errorf("eth_sendRawTransaction failed (%s): %+v", reason, rpcErr)
		}
		return nil, fmt.Errorf("eth_sendRawTransaction failed: %+v", rpcErr)
	}

	// We just return the hash here - callers poll GetTransactionReceipt for completion
	return txHash, nil
}

func logJSON(v interface{}) string {
	ret := ""
	b, _ := json.Marshal(v)
	if len(b) > 0 {
		ret = (string)(b)
	}
	return ret
}
