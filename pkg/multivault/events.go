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

	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// DecodeEvent unpacks one log against an event definition, unmarshalling the
// decoded fields into out (which carries JSON tags matching the ABI names)
func DecodeEvent(ctx context.Context, event *abi.Entry, l *ethclient.LogJSONRPC, out any) error {
	cv, err := event.DecodeEventDataCtx(ctx, l.Topics, l.Data)
	if err != nil {
		return err
	}
	jsonData, err := ethclient.StandardABISerializer().SerializeJSONCtx(ctx, cv)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, out)
}

// extractEvent scans receipt logs for the first matching event from the given
// contract. Decode problems on an otherwise successful transaction are
// warnings, never failures - the chain state change already happened.
func extractEvent(ctx context.Context, receipt *ethclient.TransactionReceipt, contractAddr *ethtypes.Address0xHex, event *abi.Entry, out any) bool {
	sigHash := event.SignatureHashBytes()
	for _, l := range receipt.Logs {
		if len(l.Topics) == 0 || !bytes.Equal(l.Topics[0], sigHash) {
			continue
		}
		if l.Address == nil || !bytes.Equal(l.Address[:], contractAddr[:]) {
			continue
		}
		if err := DecodeEvent(ctx, event, l, out); err != nil {
			log.L(ctx).Warnf("Failed to decode %s event in tx %s: %s", event.Name, receipt.TransactionHash, err)
			return false
		}
		return true
	}
	log.L(ctx).Warnf("No %s event found in tx %s", event.Name, receipt.TransactionHash)
	return false
}
