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

package indexer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/0xIntuition/intuition-go/pkg/multivault"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-signer/pkg/abi"
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

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

type mockEth struct {
	eth_blockNumber func(ctx context.Context) (ethtypes.HexUint64, error)
	eth_getLogs     func(ctx context.Context, filter ethclient.LogFilter) ([]*ethclient.LogJSONRPC, error)
}

func (m *mockEth) handle(ctx context.Context, req *rpcRequest) (interface{}, error) {
	switch req.Method {
	case "eth_chainId":
		return ethtypes.HexUint64(12345), nil
	case "eth_blockNumber":
		return m.eth_blockNumber(ctx)
	case "eth_getLogs":
		var filter ethclient.LogFilter
		_ = json.Unmarshal(req.Params[0], &filter)
		return m.eth_getLogs(ctx, filter)
	default:
		return nil, &rpcError{Code: -32601, Message: "not implemented by test"}
	}
}

func (e *rpcError) Error() string {
	return e.Message
}

func newTestIndexer(t *testing.T, mEth *mockEth, conf *Config) (ctx context.Context, ix *Indexer, done func()) {
	ctx = context.Background()

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
			}
		} else {
			res.Result = result
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}))

	signer, err := ethclient.NewRandomWalletSigner(ctx)
	require.NoError(t, err)

	rpc := rpcbackend.NewRPCClient(resty.New().SetBaseURL(server.URL))
	ec, err := ethclient.WrapRPCClient(ctx, signer, rpc, ethclient.Defaults)
	require.NoError(t, err)

	ix = New(ec, conf)
	return ctx, ix, func() {
		server.Close()
		signer.Close()
	}
}

// makeLog ABI-encodes an event occurrence at a chain position
func makeLog(t *testing.T, entry *abi.Entry, blockNumber, logIndex uint64, indexedTopics []ethtypes.HexBytes0xPrefix, dataJSON string) *ethclient.LogJSONRPC {
	var dataParams abi.ParameterArray
	for _, p := range entry.Inputs {
		if !p.Indexed {
			dataParams = append(dataParams, p)
		}
	}
	data, err := dataParams.EncodeABIDataJSON([]byte(dataJSON))
	require.NoError(t, err)
	return &ethclient.LogJSONRPC{
		BlockNumber: ethtypes.HexUint64(blockNumber),
		LogIndex:    ethtypes.HexUint64(logIndex),
		Address:     multivault.DefaultMultiVaultAddress,
		Topics:      append([]ethtypes.HexBytes0xPrefix{entry.SignatureHashBytes()}, indexedTopics...),
		Data:        data,
	}
}
