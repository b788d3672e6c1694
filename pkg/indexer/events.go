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
	"bytes"
	"context"

	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/0xIntuition/intuition-go/pkg/multivault"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// EventKind names one of the MultiVault protocol events this indexer tracks
type EventKind string

const (
	KindAtomCreated   EventKind = "AtomCreated"
	KindTripleCreated EventKind = "TripleCreated"
	KindDeposited     EventKind = "Deposited"
	KindRedeemed      EventKind = "Redeemed"
)

// AllKinds in protocol declaration order
var AllKinds = []EventKind{KindAtomCreated, KindTripleCreated, KindDeposited, KindRedeemed}

var eventEntries = map[EventKind]*abi.Entry{
	KindAtomCreated:   multivault.EventAtomCreated,
	KindTripleCreated: multivault.EventTripleCreated,
	KindDeposited:     multivault.EventDeposited,
	KindRedeemed:      multivault.EventRedeemed,
}

// EventRecord is one decoded protocol event, positioned by block number and
// log index so callers can order records across kinds
type EventRecord struct {
	Kind            EventKind                 `json:"kind"`
	BlockNumber     uint64                    `json:"blockNumber"`
	LogIndex        uint64                    `json:"logIndex"`
	TransactionHash ethtypes.HexBytes0xPrefix `json:"transactionHash"`
	Address         *ethtypes.Address0xHex    `json:"address"`

	AtomCreated   *multivault.AtomCreatedEvent   `json:"atomCreated,omitempty"`
	TripleCreated *multivault.TripleCreatedEvent `json:"tripleCreated,omitempty"`
	Deposited     *multivault.DepositedEvent     `json:"deposited,omitempty"`
	Redeemed      *multivault.RedeemedEvent      `json:"redeemed,omitempty"`
}

func kindForTopic(topic0 ethtypes.HexBytes0xPrefix) (EventKind, bool) {
	for kind, entry := range eventEntries {
		if bytes.Equal(topic0, entry.SignatureHashBytes()) {
			return kind, true
		}
	}
	return "", false
}

// decodeLog maps a raw log onto an EventRecord by its first topic.
// Logs with an unrecognized signature return nil - other contracts sharing an
// address range with the protocol are not this indexer's problem.
func decodeLog(ctx context.Context, l *ethclient.LogJSONRPC) (*EventRecord, error) {
	if len(l.Topics) == 0 {
		return nil, nil
	}
	kind, ok := kindForTopic(l.Topics[0])
	if !ok {
		return nil, nil
	}
	rec := &EventRecord{
		Kind:            kind,
		BlockNumber:     l.BlockNumber.Uint64(),
		LogIndex:        l.LogIndex.Uint64(),
		TransactionHash: l.TransactionHash,
		Address:         l.Address,
	}
	var err error
	switch kind {
	case KindAtomCreated:
		rec.AtomCreated = &multivault.AtomCreatedEvent{}
		err = multivault.DecodeEvent(ctx, eventEntries[kind], l, rec.AtomCreated)
	case KindTripleCreated:
		rec.TripleCreated = &multivault.TripleCreatedEvent{}
		err = multivault.DecodeEvent(ctx, eventEntries[kind], l, rec.TripleCreated)
	case KindDeposited:
		rec.Deposited = &multivault.DepositedEvent{}
		err = multivault.DecodeEvent(ctx, eventEntries[kind], l, rec.Deposited)
	case KindRedeemed:
		rec.Redeemed = &multivault.RedeemedEvent{}
		err = multivault.DecodeEvent(ctx, eventEntries[kind], l, rec.Redeemed)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
