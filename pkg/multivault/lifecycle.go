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
	"context"

	"github.com/0xIntuition/intuition-go/internal/msgs"
	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// submit takes a prepared request builder through gas pricing, nonce
// allocation, signing and mempool submission. The lock serializes this whole
// sequence for the account, and nonces come from the local allocator rather
// than the node, so an operation submitted while an earlier transaction is
// still unmined gets the next nonce, not the same one again.
func (c *Client) submit(ctx context.Context, desc string, req ethclient.ABIFunctionRequestBuilder, gasLimit uint64) (ethtypes.HexBytes0xPrefix, error) {
	c.txLock.Lock()
	defer c.txLock.Unlock()

	if c.nextNonce == nil {
		txCount, err := c.ec.GetTransactionCount(ctx, c.from)
		if err != nil {
			return nil, err
		}
		nonce := txCount.Uint64()
		c.nextNonce = &nonce
	}

	// Fresh gas price for every transaction - never cached
	gasPrice, err := c.ec.GasPrice(ctx)
	if err != nil {
		return nil, err
	}
	req.GasPrice(gasPrice).GasLimit(gasLimit).Nonce(*c.nextNonce)

	rawTX, err := req.RawTransaction()
	if err != nil {
		return nil, err
	}
	log.L(ctx).Debugf("%s transaction built and signed (nonce=%d gasLimit=%d)", desc, *c.nextNonce, gasLimit)

	txHash, err := c.ec.SendRawTransaction(ctx, rawTX)
	if err != nil {
		// The allocation is suspect after a rejection - re-seed from the
		// node on the next submission
		c.nextNonce = nil
		return nil, err
	}
	*c.nextNonce++
	log.L(ctx).Infof("%s transaction submitted tx=%s", desc, txHash)
	return txHash, nil
}

// waitForConfirmation polls for the receipt until the confirmation window
// closes. A missing receipt at the deadline is TimedOut - the transaction may
// still confirm later, which is a different outcome to Reverted.
func (c *Client) waitForConfirmation(ctx context.Context, desc string, txHash ethtypes.HexBytes0xPrefix) (*TxResult, error) {
	res := &TxResult{
		Status:          TxSubmitted,
		TransactionHash: txHash,
	}

	pollCtx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	var receipt *ethclient.TransactionReceipt
	err := c.receiptRetry.Do(pollCtx, desc+" receipt", func(attempt int) (retry bool, err error) {
		receipt, err = c.ec.GetTransactionReceipt(pollCtx, txHash)
		return err != nil, err
	})
	if err != nil {
		if pollCtx.Err() != nil {
			res.Status = TxTimedOut
			return res, i18n.NewError(ctx, msgs.MsgMultiVaultConfirmationTimeout, txHash)
		}
		return res, err
	}

	res.receipt = receipt
	res.BlockNumber = (*fftypes.FFBigInt)(receipt.BlockNumber.BigInt())
	res.GasUsed = (*fftypes.FFBigInt)(receipt.GasUsed.BigInt())
	if !receipt.Success() {
		res.Status = TxReverted
		return res, i18n.NewError(ctx, msgs.MsgMultiVaultTransactionReverted, txHash)
	}
	res.Status = TxConfirmed
	log.L(ctx).Infof("%s transaction confirmed tx=%s block=%s", desc, txHash, receipt.BlockNumber.BigInt())
	return res, nil
}

func (c *Client) submitAndWait(ctx context.Context, desc string, req ethclient.ABIFunctionRequestBuilder, gasLimit uint64) (*TxResult, error) {
	txHash, err := c.submit(ctx, desc, req, gasLimit)
	if err != nil {
		return nil, err
	}
	return c.waitForConfirmation(ctx, desc, txHash)
}
