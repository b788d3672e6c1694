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

package multivault

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func init() {
	logrus.SetLevel(logrus.DebugLevel)
}

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

func (e *rpcError) Error() string {
	return e.Message
}

// viewFn handles one read-only contract function in the test node. Inputs are
// the serialized calldata values, the return is the outputs as JSON.
type viewFn func(inputs map[string]interface{}) (string, error)

// submittedTX is one transaction accepted by the test node, decoded back out
// of its raw signed form
type submittedTX struct {
	fn       string
	to       *ethtypes.Address0xHex
	inputs   map[string]interface{}
	gasLimit int64
	nonce    int64
	hash     ethtypes.HexBytes0xPrefix
}

// testNode is a stub chain node for one account. Views dispatch by the
// decoded function selector; submitted transactions queue up for assertion,
// with receipts minted by the receiptFor hook (default: success, no logs).
type testNode struct {
	t          *testing.T
	views      map[string]viewFn
	receiptFor func(tx *submittedTX) *ethclient.TransactionReceipt

	mux        sync.Mutex
	minedNonce uint64 // eth_getTransactionCount("latest") counts mined transactions only
	submitted  []*submittedTX
}

func (n *testNode) allFunctions() []*abi.Entry {
	var fns []*abi.Entry
	for _, a := range []abi.ABI{MultiVaultABI, TrustBondingABI, TrustERC20ABI} {
		for _, e := range a {
			if e.Type == abi.Function {
				fns = append(fns, e)
			}
		}
	}
	return fns
}

func (n *testNode) decodeInvocation(data ethtypes.HexBytes0xPrefix) (*abi.Entry, map[string]interface{}) {
	require.GreaterOrEqual(n.t, len(data), 4)
	for _, entry := range n.allFunctions() {
		selector, err := entry.GenerateFunctionSelector()
		require.NoError(n.t, err)
		if !bytes.Equal(data[0:4], selector) {
			continue
		}
		cv, err := entry.DecodeCallData(data)
		require.NoError(n.t, err)
		jsonData, err := ethclient.StandardABISerializer().SerializeJSON(cv)
		require.NoError(n.t, err)
		var inputs map[string]interface{}
		require.NoError(n.t, json.Unmarshal(jsonData, &inputs))
		return entry, inputs
	}
	n.t.Fatalf("unexpected function selector %x", data[0:4])
	return nil, nil
}

func (n *testNode) handle(ctx context.Context, req *rpcRequest) (interface{}, error) {
	switch req.Method {
	case "eth_chainId":
		return ethtypes.HexUint64(12345), nil
	case "eth_gasPrice":
		return ethtypes.NewHexInteger64(2000000000), nil
	case "eth_getTransactionCount":
		n.mux.Lock()
		defer n.mux.Unlock()
		return ethtypes.HexUint64(n.minedNonce), nil
	case "eth_call":
		var tx ethsigner.Transaction
		_ = json.Unmarshal(req.Params[0], &tx)
		entry, inputs := n.decodeInvocation(tx.Data)
		view := n.views[entry.Name]
		if view == nil {
			return nil, fmt.Errorf("no view handler for %s", entry.Name)
		}
		outJSON, err := view(inputs)
		if err != nil {
			return nil, err
		}
		outData, err := entry.Outputs.EncodeABIDataJSON([]byte(outJSON))
		if err != nil {
			return nil, err
		}
		return ethtypes.HexBytes0xPrefix(outData), nil
	case "eth_sendRawTransaction":
		var rawTX ethtypes.HexBytes0xPrefix
		_ = json.Unmarshal(req.Params[0], &rawTX)
		_, signedTX, err := ethsigner.RecoverRawTransaction(context.Background(), rawTX, 12345)
		require.NoError(n.t, err)
		entry, inputs := n.decodeInvocation(signedTX.Data)
		hash := sha3.NewLegacyKeccak256()
		_, _ = hash.Write(rawTX)
		sent := &submittedTX{
			fn:       entry.Name,
			to:       signedTX.To,
			inputs:   inputs,
			gasLimit: signedTX.GasLimit.Int64(),
			nonce:    signedTX.Nonce.Int64(),
			hash:     hash.Sum(nil),
		}
		n.mux.Lock()
		n.submitted = append(n.submitted, sent)
		n.mux.Unlock()
		return sent.hash, nil
	case "eth_getTransactionReceipt":
		var txHash ethtypes.HexBytes0xPrefix
		_ = json.Unmarshal(req.Params[0], &txHash)
		n.mux.Lock()
		var tx *submittedTX
		for _, s := range n.submitted {
			if bytes.Equal(s.hash, txHash) {
				tx = s
			}
		}
		n.mux.Unlock()
		require.NotNil(n.t, tx, "receipt requested for unknown tx %s", txHash)
		if n.receiptFor != nil {
			receipt := n.receiptFor(tx)
			if receipt == nil {
				return nil, nil
			}
			receipt.TransactionHash = tx.hash
			return receipt, nil
		}
		return successReceipt(tx.hash), nil
	default:
		return nil, &rpcError{Code: -32601, Message: "not implemented by test"}
	}
}

func (n *testNode) lastSubmitted() *submittedTX {
	n.mux.Lock()
	defer n.mux.Unlock()
	require.NotEmpty(n.t, n.submitted)
	return n.submitted[len(n.submitted)-1]
}

func successReceipt(txHash ethtypes.HexBytes0xPrefix, logs ...*ethclient.LogJSONRPC) *ethclient.TransactionReceipt {
	return &ethclient.TransactionReceipt{
		TransactionHash: txHash,
		BlockNumber:     ethtypes.NewHexInteger64(1000),
		GasUsed:         ethtypes.NewHexInteger64(54321),
		Status:          ethtypes.NewHexInteger64(1),
		Logs:            logs,
	}
}

func revertedReceipt(txHash ethtypes.HexBytes0xPrefix) *ethclient.TransactionReceipt {
	return &ethclient.TransactionReceipt{
		TransactionHash: txHash,
		BlockNumber:     ethtypes.NewHexInteger64(1000),
		GasUsed:         ethtypes.NewHexInteger64(54321),
		Status:          ethtypes.NewHexInteger64(0),
	}
}

// makeEventLog ABI-encodes an event occurrence the way a node reports it:
// indexed values as topics after the signature hash, the rest in the data
func makeEventLog(t *testing.T, entry *abi.Entry, indexedTopics []ethtypes.HexBytes0xPrefix, dataJSON string, address *ethtypes.Address0xHex) *ethclient.LogJSONRPC {
	var dataParams abi.ParameterArray
	for _, p := range entry.Inputs {
		if !p.Indexed {
			dataParams = append(dataParams, p)
		}
	}
	data, err := dataParams.EncodeABIDataJSON([]byte(dataJSON))
	require.NoError(t, err)
	return &ethclient.LogJSONRPC{
		BlockNumber: 1000,
		Address:     address,
		Topics:      append([]ethtypes.HexBytes0xPrefix{entry.SignatureHashBytes()}, indexedTopics...),
		Data:        data,
	}
}

func addrTopic(addr *ethtypes.Address0xHex) ethtypes.HexBytes0xPrefix {
	topic := make(ethtypes.HexBytes0xPrefix, 32)
	copy(topic[12:], addr[:])
	return topic
}

func idTopic(id *TermID) ethtypes.HexBytes0xPrefix {
	return ethtypes.HexBytes0xPrefix(id.Bytes())
}

func newVaultTestbed(t *testing.T, node *testNode, conf *Config) (ctx context.Context, c *Client, done func()) {
	ctx = context.Background()
	node.t = t

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		require.NoError(t, err)
		res := &rpcResponse{JSONRPC: "2.0", ID: req.ID}
		result, handleErr := node.handle(r.Context(), &req)
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

	if conf == nil {
		conf = &Config{
			Confirmations: ConfirmationsConfig{
				PollInterval: strPtr("10ms"),
				Timeout:      strPtr("2s"),
			},
		}
	}
	c, err = New(ctx, ec, conf)
	require.NoError(t, err)

	return ctx, c, func() {
		server.Close()
		signer.Close()
	}
}

func strPtr(s string) *string { return &s }
