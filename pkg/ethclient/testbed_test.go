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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data,omitempty"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type mockEth struct {
	eth_chainId               func(ctx context.Context) (ethtypes.HexUint64, error)
	eth_getBalance            func(ctx context.Context, addr ethtypes.Address0xHex, block string) (*ethtypes.HexInteger, error)
	eth_gasPrice              func(ctx context.Context) (*ethtypes.HexInteger, error)
	eth_getTransactionCount   func(ctx context.Context, addr ethtypes.Address0xHex, block string) (ethtypes.HexUint64, error)
	eth_estimateGas           func(ctx context.Context, tx ethsigner.Transaction) (ethtypes.HexUint64, error)
	eth_sendRawTransaction    func(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error)
	eth_call                  func(ctx context.Context, tx ethsigner.Transaction, block string) (ethtypes.HexBytes0xPrefix, error)
	eth_callErrData           string
	eth_getTransactionReceipt func(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*TransactionReceipt, error)
	eth_blockNumber           func(ctx context.Context) (ethtypes.HexUint64, error)
	eth_getLogs               func(ctx context.Context, filter LogFilter) ([]*LogJSONRPC, error)
}

func (m *mockEth) handle(ctx context.Context, req *rpcRequest) (interface{}, error) {
	switch req.Method {
	case "eth_chainId":
		if m.eth_chainId == nil {
			return ethtypes.HexUint64(12345), nil
		}
		return m.eth_chainId(ctx)
	case "eth_getBalance":
		var addr ethtypes.Address0xHex
		var block string
		_ = json.Unmarshal(req.Params[0], &addr)
		_ = json.Unmarshal(req.Params[1], &block)
		return m.eth_getBalance(ctx, addr, block)
	case "eth_gasPrice":
		return m.eth_gasPrice(ctx)
	case "eth_getTransactionCount":
		var addr ethtypes.Address0xHex
		var block string
		_ = json.Unmarshal(req.Params[0], &addr)
		_ = json.Unmarshal(req.Params[1], &block)
		return m.eth_getTransactionCount(ctx, addr, block)
	case "eth_estimateGas":
		var tx ethsigner.Transaction
		_ = json.Unmarshal(req.Params[0], &tx)
		return m.eth_estimateGas(ctx, tx)
	case "eth_sendRawTransaction":
		var rawTX ethtypes.HexBytes0xPrefix
		_ = json.Unmarshal(req.Params[0], &rawTX)
		return m.eth_sendRawTransaction(ctx, rawTX)
	case "eth_call":
		var tx ethsigner.Transaction
		var block string
		_ = json.Unmarshal(req.Params[0], &tx)
		_ = json.Unmarshal(req.Params[1], &block)
		return m.eth_call(ctx, tx, block)
	case "eth_getTransactionReceipt":
		var txHash ethtypes.HexBytes0xPrefix
		_ = json.Unmarshal(req.Params[0], &txHash)
		return m.eth_getTransactionReceipt(ctx, txHash)
	case "eth_blockNumber":
		return m.eth_blockNumber(ctx)
	case "eth_getLogs":
		var filter LogFilter
		_ = json.Unmarshal(req.Params[0], &filter)
		return m.eth_getLogs(ctx, filter)
	default:
		return nil, &rpcError{Code: -32601, Message: "not implemented by test"}
	}
}

func newTestServer(t *testing.T, mEth *mockEth) (url string, done func()) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		res := &rpcResponse{JSONRPC: "2.0", ID: req.ID}
		result, handleErr := func() (result interface{}, err error) {
			defer func() {
				if p := recover(); p != nil {
					err = &rpcError{Code: -32601, Message: "not implemented by test"}
				}
			}()
			return mEth.handle(r.Context(), &req)
		}()
		if handleErr != nil {
			if rpcErr, ok := handleErr.(*rpcError); ok {
				res.Error = rpcErr
			} else {
				res.Error = &rpcError{Code: -32000, Message: handleErr.Error()}
				if req.Method == "eth_call" && mEth.eth_callErrData != "" {
					res.Error.Data = mEth.eth_callErrData
				}
			}
		} else {
			res.Result = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}))
	return server.URL, server.Close
}

func (e *rpcError) Error() string {
	return e.Message
}

func newTestClientAndServer(t *testing.T, mEth *mockEth) (ctx context.Context, ec EthClient, done func()) {
	ctx = context.Background()

	url, serverDone := newTestServer(t, mEth)

	signer, err := NewRandomWalletSigner(ctx)
	require.NoError(t, err)

	rpc := rpcbackend.NewRPCClient(resty.New().SetBaseURL(url))
	ec, err = WrapRPCClient(ctx, signer, rpc, Defaults)
	require.NoError(t, err)

	return ctx, ec, func() {
		serverDone()
		signer.Close()
	}
}
