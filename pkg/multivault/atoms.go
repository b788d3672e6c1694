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
	"math/big"

	"github.com/0xIntuition/intuition-go/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// CreateAtom creates an atom vault for the given data, with an optional
// initial deposit (nil or zero for none). Creation is idempotent: if the
// derived term already exists the result carries AlreadyExisted with no
// transaction submitted.
//
// The account pays atom cost plus deposit in WTRUST, pulled by the contract
// under the allowance this call tops up first.
func (c *Client) CreateAtom(ctx context.Context, atomData []byte, deposit *big.Int) (*CreateResult, error) {
	if deposit == nil {
		deposit = new(big.Int)
	}

	termID, err := c.CalculateAtomID(ctx, atomData)
	if err != nil {
		return nil, err
	}
	exists, err := c.IsTermCreated(ctx, *termID)
	if err != nil {
		return nil, err
	}
	if exists {
		log.L(ctx).Infof("Atom %s already exists", termID)
		return &CreateResult{TermID: *termID, AlreadyExisted: true}, nil
	}

	cost, err := c.AtomCost(ctx)
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Add(cost, deposit)

	approval, err := c.fundSpend(ctx, total)
	if err != nil {
		return nil, err
	}

	req := c.mvCreateAtoms.R(ctx).To(c.mvAddr).
		Input(map[string]any{
			"atomDatas": []any{ethtypes.HexBytes0xPrefix(atomData).String()},
			"assets":    []any{deposit.String()},
		})
	tx, err := c.submitAndWait(ctx, "createAtoms", req, c.gasCreateAtom)
	if err != nil {
		return nil, err
	}

	res := &CreateResult{TermID: *termID, Tx: tx, Approval: approval}
	var ev AtomCreatedEvent
	if extractEvent(ctx, tx.Receipt(), c.mvAddr, EventAtomCreated, &ev) {
		res.TermID = ev.TermID
		res.AtomWallet = ev.AtomWallet
	}
	return res, nil
}

// fundSpend checks the WTRUST balance covers the total and tops up the
// MultiVault allowance. Shared preamble for every spending operation.
func (c *Client) fundSpend(ctx context.Context, total *big.Int) (*TxResult, error) {
	if total.Sign() == 0 {
		return nil, nil
	}
	balance, err := c.TrustBalanceOf(ctx, c.from)
	if err != nil {
		return nil, err
	}
	if balance.Cmp(total) < 0 {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultInsufficientBalance, total, balance)
	}
	return c.EnsureAllowance(ctx, total)
}
