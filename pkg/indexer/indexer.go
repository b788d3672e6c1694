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
	"sort"
	"sync"
	"time"

	"github.com/0xIntuition/intuition-go/internal/confutil"
	"github.com/0xIntuition/intuition-go/internal/msgs"
	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/0xIntuition/intuition-go/pkg/multivault"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

type Config struct {
	ContractAddress *ethtypes.Address0xHex `yaml:"contractAddress"`
	PollInterval    *string                `yaml:"pollInterval"`
}

var Defaults = &Config{
	ContractAddress: multivault.DefaultMultiVaultAddress,
	PollInterval:    confutil.P("2s"),
}

// Indexer reads MultiVault protocol events, either over a historical block
// range or as a live stream
type Indexer struct {
	ec           ethclient.EthClient
	contractAddr *ethtypes.Address0xHex
	pollInterval time.Duration

	mux       sync.Mutex
	listening bool
}

func New(ec ethclient.EthClient, conf *Config) *Indexer {
	if conf == nil {
		conf = Defaults
	}
	addr := conf.ContractAddress
	if addr == nil {
		addr = Defaults.ContractAddress
	}
	return &Indexer{
		ec:           ec,
		contractAddr: addr,
		pollInterval: confutil.DurationMin(conf.PollInterval, 10*time.Millisecond, confutil.Duration(Defaults.PollInterval, 2*time.Second)),
	}
}

// QueryRange reads all protocol events of the given kinds over an inclusive
// block range, ordered by block number then log index. No kinds means all.
func (ix *Indexer) QueryRange(ctx context.Context, fromBlock, toBlock uint64, kinds ...EventKind) ([]*EventRecord, error) {
	return ix.query(ctx, fromBlock, toBlock, nil, kinds)
}

// QueryAccount is QueryRange narrowed to one account - the creator of
// creation events, the sender of deposits and redemptions
func (ix *Indexer) QueryAccount(ctx context.Context, account *ethtypes.Address0xHex, fromBlock, toBlock uint64, kinds ...EventKind) ([]*EventRecord, error) {
	return ix.query(ctx, fromBlock, toBlock, [][]ethtypes.HexBytes0xPrefix{{addressTopic(account)}}, kinds)
}

func (ix *Indexer) query(ctx context.Context, fromBlock, toBlock uint64, extraTopics [][]ethtypes.HexBytes0xPrefix, kinds []EventKind) ([]*EventRecord, error) {
	if fromBlock > toBlock {
		return nil, i18n.NewError(ctx, msgs.MsgIndexerInvalidBlockRange, fromBlock, toBlock)
	}
	if len(kinds) == 0 {
		kinds = AllKinds
	}

	from := ethtypes.HexUint64(fromBlock)
	to := ethtypes.HexUint64(toBlock)
	var records []*EventRecord
	for _, kind := range kinds {
		entry, ok := eventEntries[kind]
		if !ok {
			return nil, i18n.NewError(ctx, msgs.MsgIndexerUnknownEventKind, kind)
		}
		topics := append([][]ethtypes.HexBytes0xPrefix{{entry.SignatureHashBytes()}}, extraTopics...)
		logs, err := ix.ec.GetLogs(ctx, &ethclient.LogFilter{
			FromBlock: &from,
			ToBlock:   &to,
			Address:   ix.contractAddr,
			Topics:    topics,
		})
		if err != nil {
			return nil, err
		}
		for _, l := range logs {
			rec, err := decodeLog(ctx, l)
			if err != nil {
				// Same best-effort policy as the live listener
				log.L(ctx).Warnf("Discarding undecodable event (block=%d logIndex=%d): %s", l.BlockNumber.Uint64(), l.LogIndex.Uint64(), err)
				continue
			}
			if rec != nil {
				records = append(records, rec)
			}
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].BlockNumber != records[j].BlockNumber {
			return records[i].BlockNumber < records[j].BlockNumber
		}
		return records[i].LogIndex < records[j].LogIndex
	})
	log.L(ctx).Debugf("Query blocks %d-%d returned %d events", fromBlock, toBlock, len(records))
	return records, nil
}

// addressTopic left-pads a 20 byte address to the 32 byte topic encoding of
// an indexed address parameter
func addressTopic(addr *ethtypes.Address0xHex) ethtypes.HexBytes0xPrefix {
	topic := make(ethtypes.HexBytes0xPrefix, 32)
	copy(topic[12:], addr[:])
	return topic
}
