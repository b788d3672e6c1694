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
	"time"

	"github.com/0xIntuition/intuition-go/internal/msgs"
	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/rpcbackend"
)

// Listen streams protocol events as they are mined, until the context is
// cancelled. The returned channel is closed when the stream ends.
//
// A WebSocket backed client gets a real eth_subscribe logs subscription.
// Otherwise the listener falls back to polling eth_blockNumber/eth_getLogs at
// the configured interval, starting from the block after the current head.
//
// Only one Listen per Indexer can be active at a time.
func (ix *Indexer) Listen(ctx context.Context) (<-chan *EventRecord, error) {
	ix.mux.Lock()
	defer ix.mux.Unlock()
	if ix.listening {
		return nil, i18n.NewError(ctx, msgs.MsgIndexerAlreadyListening)
	}

	topic0s := make([]ethtypes.HexBytes0xPrefix, 0, len(AllKinds))
	for _, kind := range AllKinds {
		topic0s = append(topic0s, eventEntries[kind].SignatureHashBytes())
	}
	filter := &ethclient.LogFilter{
		Address: ix.contractAddr,
		Topics:  [][]ethtypes.HexBytes0xPrefix{topic0s},
	}

	events := make(chan *EventRecord)
	sub, err := ix.ec.SubscribeLogs(ctx, filter)
	if err == nil {
		log.L(ctx).Infof("Listening for events on %s over WebSocket subscription", ix.contractAddr)
		ix.listening = true
		go ix.streamSubscription(ctx, sub, events)
		return events, nil
	}
	log.L(ctx).Debugf("Logs subscription unavailable, polling every %s: %s", ix.pollInterval, err)

	head, err := ix.ec.BlockNumber(ctx)
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Listening for events on %s by polling from block %d", ix.contractAddr, head.Uint64()+1)
	ix.listening = true
	go ix.streamPolling(ctx, filter, head.Uint64(), events)
	return events, nil
}

// stopped releases the listening slot before closing the channel, so a caller
// observing the close can immediately start a new listener
func (ix *Indexer) stopped(events chan *EventRecord) {
	ix.mux.Lock()
	ix.listening = false
	ix.mux.Unlock()
	close(events)
}

func (ix *Indexer) streamSubscription(ctx context.Context, sub rpcbackend.Subscription, events chan *EventRecord) {
	defer ix.stopped(events)
	for {
		select {
		case <-ctx.Done():
			log.L(ctx).Debugf("Event listener stopping: %s", ctx.Err())
			if rpcErr := sub.Unsubscribe(context.Background()); rpcErr != nil {
				log.L(ctx).Warnf("Failed to release logs subscription: %s", rpcErr.Error())
			}
			return
		case n, ok := <-sub.Notifications():
			if !ok {
				log.L(ctx).Warnf("Logs subscription closed by server")
				return
			}
			var l ethclient.LogJSONRPC
			if err := json.Unmarshal(n.Result.Bytes(), &l); err != nil {
				log.L(ctx).Warnf("Discarding bad subscription payload: %s", err)
				continue
			}
			ix.deliver(ctx, &l, events)
		}
	}
}

func (ix *Indexer) streamPolling(ctx context.Context, filter *ethclient.LogFilter, lastBlock uint64, events chan *EventRecord) {
	defer ix.stopped(events)
	ticker := time.NewTicker(ix.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.L(ctx).Debugf("Event listener stopping: %s", ctx.Err())
			return
		case <-ticker.C:
		}

		head, err := ix.ec.BlockNumber(ctx)
		if err != nil {
			log.L(ctx).Warnf("eth_blockNumber poll failed: %s", err)
			continue
		}
		if head.Uint64() <= lastBlock {
			continue
		}
		from := ethtypes.HexUint64(lastBlock + 1)
		to := head
		logs, err := ix.ec.GetLogs(ctx, &ethclient.LogFilter{
			FromBlock: &from,
			ToBlock:   &to,
			Address:   filter.Address,
			Topics:    filter.Topics,
		})
		if err != nil {
			// Leave lastBlock alone so the range is retried next tick
			log.L(ctx).Warnf("eth_getLogs poll failed: %s", err)
			continue
		}
		for _, l := range logs {
			ix.deliver(ctx, l, events)
		}
		lastBlock = head.Uint64()
	}
}

func (ix *Indexer) deliver(ctx context.Context, l *ethclient.LogJSONRPC, events chan *EventRecord) {
	rec, err := decodeLog(ctx, l)
	if err != nil {
		log.L(ctx).Warnf("Discarding undecodable event (block=%d logIndex=%d): %s", l.BlockNumber.Uint64(), l.LogIndex.Uint64(), err)
		return
	}
	if rec == nil {
		return
	}
	select {
	case events <- rec:
	case <-ctx.Done():
	}
}
