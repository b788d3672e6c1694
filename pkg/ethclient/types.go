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
	"strings"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// EthTXVersion controls the transaction encoding used when signing
type EthTXVersion string

const (
	EIP1559         EthTXVersion = "eip1559"
	LEGACY_EIP155   EthTXVersion = "legacy_eip155"
	LEGACY_ORIGINAL EthTXVersion = "legacy_original"
)

// ErrorReason are a set of standard error conditions mapped from the free-text
// errors of the execution client, that affect how a submission failure is handled
type ErrorReason string

const (
	// ErrorReasonTransactionReverted on-chain execution failure (returned from gas estimation or a query)
	ErrorReasonTransactionReverted ErrorReason = "transaction_reverted"
	// ErrorReasonNonceTooLow the nonce has already been used in a block on the canonical chain known to the local node
	ErrorReasonNonceTooLow ErrorReason = "nonce_too_low"
	// ErrorReasonTransactionUnderpriced the gas price is below the node minimum
	ErrorReasonTransactionUnderpriced ErrorReason = "transaction_underpriced"
	// ErrorReasonInsufficientFunds not enough of the network coin in the sending wallet to cover value + gas
	ErrorReasonInsufficientFunds ErrorReason = "insufficient_funds"
	// ErrorReasonNotFound the requested object (block/receipt etc.) was not found
	ErrorReasonNotFound ErrorReason = "not_found"
	// ErrorKnownTransaction the exact transaction is already in the mempool
	ErrorKnownTransaction ErrorReason = "known_transaction"
)

func MapError(err error) ErrorReason {
	errString := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errString, "nonce too low"):
		return ErrorReasonNonceTooLow
	case strings.Contains(errString, "insufficient funds"):
		return ErrorReasonInsufficientFunds
	case strings.Contains(errString, "transaction underpriced"):
		return ErrorReasonTransactionUnderpriced
	case strings.Contains(errString, "known transaction"):
		return ErrorKnownTransaction
	case strings.Contains(errString, "already known"):
		return ErrorKnownTransaction
	case strings.Contains(errString, "execution reverted"):
		return ErrorReasonTransactionReverted
	default:
		// default to no mapping
		return ""
	}
}

// TransactionReceipt is the receipt obtained over JSON/RPC from the ethereum client,
// with gas used, logs and contract address
type TransactionReceipt struct {
	BlockHash         ethtypes.HexBytes0xPrefix  `json:"blockHash"`
	BlockNumber       *ethtypes.HexInteger       `json:"blockNumber"`
	ContractAddress   *ethtypes.Address0xHex     `json:"contractAddress"`
	CumulativeGasUsed *ethtypes.HexInteger       `json:"cumulativeGasUsed"`
	From              *ethtypes.Address0xHex     `json:"from"`
	GasUsed           *ethtypes.HexInteger       `json:"gasUsed"`
	Logs              []*LogJSONRPC              `json:"logs"`
	Status            *ethtypes.HexInteger       `json:"status"`
	To                *ethtypes.Address0xHex     `json:"to"`
	TransactionHash   ethtypes.HexBytes0xPrefix  `json:"transactionHash"`
	TransactionIndex  *ethtypes.HexInteger       `json:"transactionIndex"`
	RevertReason      *ethtypes.HexBytes0xPrefix `json:"revertReason"`
}

func (r *TransactionReceipt) Success() bool {
	return r != nil && r.Status != nil && r.Status.BigInt().Int64() > 0
}

// LogJSONRPC is an individual event as returned by eth_getLogs, in a receipt,
// or over a logs subscription
type LogJSONRPC struct {
	Removed          bool                        `json:"removed"`
	LogIndex         ethtypes.HexUint64          `json:"logIndex"`
	TransactionIndex ethtypes.HexUint64          `json:"transactionIndex"`
	BlockNumber      ethtypes.HexUint64          `json:"blockNumber"`
	TransactionHash  ethtypes.HexBytes0xPrefix   `json:"transactionHash"`
	BlockHash        ethtypes.HexBytes0xPrefix   `json:"blockHash"`
	Address          *ethtypes.Address0xHex      `json:"address"`
	Data             ethtypes.HexBytes0xPrefix   `json:"data"`
	Topics           []ethtypes.HexBytes0xPrefix `json:"topics"`
}

// LogFilter is the eth_getLogs query, also reused (minus the block range) as the
// param object for logs subscriptions
type LogFilter struct {
	FromBlock *ethtypes.HexUint64           `json:"fromBlock,omitempty"`
	ToBlock   *ethtypes.HexUint64           `json:"toBlock,omitempty"`
	Address   *ethtypes.Address0xHex        `json:"address,omitempty"`
	Topics    [][]ethtypes.HexBytes0xPrefix `json:"topics,omitempty"`
}
