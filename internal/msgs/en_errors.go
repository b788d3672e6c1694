// Copyright © 2026 Intuition Systems, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package msgs

import (
	"fmt"
	"strings"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const intuitionPrefix = "IN01"

var registered = false
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	if !registered {
		i18n.RegisterPrefix(intuitionPrefix, "Intuition Client SDK")
		registered = true
	}
	if !strings.HasPrefix(key, intuitionPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", intuitionPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (

	// RPC client connection config IN0101XX
	MsgRPCClientInvalidHTTPURL      = ffe("IN010100", "Invalid HTTP URL: %s")
	MsgRPCClientInvalidWebSocketURL = ffe("IN010101", "Invalid WebSocket URL: %s")

	// EthClient IN0102XX
	MsgEthClientChainIDFailed       = ffe("IN010200", "Failed to query chain ID")
	MsgEthClientHTTPURLMissing      = ffe("IN010201", "HTTP URL missing in configuration")
	MsgEthClientChainIDMismatch     = ffe("IN010202", "ChainID mismatch between HTTP and WebSocket JSON/RPC connections http=%d ws=%d")
	MsgEthClientInvalidTXVersion    = ffe("IN010203", "Invalid TX Version (%s)")
	MsgEthClientABIJson             = ffe("IN010204", "JSON ABI parsing failed")
	MsgEthClientFunctionNotFound    = ffe("IN010205", "Function %q not found on ABI")
	MsgEthClientMissingTo           = ffe("IN010206", "To missing")
	MsgEthClientMissingInput        = ffe("IN010207", "Input missing")
	MsgEthClientMissingOutput       = ffe("IN010208", "Output missing")
	MsgEthClientInvalidInput        = ffe("IN010209", "Unable to convert to ABI function input (func=%s)")
	MsgEthClientReceiptNotAvailable = ffe("IN010210", "Receipt not available for transaction '%s'")
	MsgEthClientInvalidPrivateKey   = ffe("IN010211", "Invalid private key")
	MsgEthClientNotWebSocket        = ffe("IN010212", "Subscriptions require a WebSocket JSON/RPC connection")
	MsgEthClientCallReverted        = ffe("IN010213", "Reverted: %s")

	// MultiVault orchestration IN0103XX
	MsgMultiVaultInvalidTermID         = ffe("IN010300", "Invalid term ID (expected 32 byte hex): %s")
	MsgMultiVaultTermNotFound          = ffe("IN010301", "Term %s does not exist")
	MsgMultiVaultReferencedTermMissing = ffe("IN010303", "Referenced %s term %s has not been created")
	MsgMultiVaultInsufficientBalance   = ffe("IN010304", "Insufficient TRUST balance: need %s but have %s")
	MsgMultiVaultApprovalFailed        = ffe("IN010305", "Token approval transaction %s did not raise allowance to %s (current=%s)")
	MsgMultiVaultNothingToRedeem       = ffe("IN010306", "No shares to redeem for term %s (curve %d)")
	MsgMultiVaultNothingBonded         = ffe("IN010307", "Account %s has no bonded balance")
	MsgMultiVaultNothingClaimable      = ffe("IN010308", "Account %s has no claimable rewards")
	MsgMultiVaultInvalidSlippage       = ffe("IN010309", "Invalid slippage (basis points must be in 0..10000): %d")
	MsgMultiVaultTransactionReverted   = ffe("IN010310", "Transaction %s reverted")
	MsgMultiVaultConfirmationTimeout   = ffe("IN010311", "Timed out waiting for confirmation of transaction %s (the transaction may still confirm)")
	MsgMultiVaultInvalidAmount         = ffe("IN010312", "Amount must be a positive integer: %s")

	// Event indexer IN0104XX
	MsgIndexerInvalidBlockRange = ffe("IN010400", "Invalid block range: from=%d to=%d")
	MsgIndexerUnknownEventKind  = ffe("IN010401", "Unknown event kind: %s")
	MsgIndexerAlreadyListening  = ffe("IN010402", "Listener already started")
)
