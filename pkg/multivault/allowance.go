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
)

// EnsureAllowance makes sure the MultiVault can pull at least required WTRUST
// from the sending account. Returns nil when the standing allowance already
// covers the requirement - no transaction is submitted in that case.
//
// The approval is for the exact amount, not unlimited. Every spending
// operation tops the allowance back up before it pulls.
func (c *Client) EnsureAllowance(ctx context.Context, required *big.Int) (*TxResult, error) {
	allowance, err := c.TrustAllowance(ctx, c.from)
	if err != nil {
		return nil, err
	}
	if allowance.Cmp(required) >= 0 {
		log.L(ctx).Debugf("Allowance %s already covers %s", allowance, required)
		return nil, nil
	}

	req := c.tokApprove.R(ctx).To(c.tokenAddr).
		Input(map[string]any{
			"spender": c.mvAddr.String(),
			"amount":  required.String(),
		})
	res, err := c.submitAndWait(ctx, "approve", req, c.gasApprove)
	if err != nil {
		return res, err
	}

	// The transaction succeeded, but confirm the allowance really moved
	allowance, err = c.TrustAllowance(ctx, c.from)
	if err != nil {
		return res, err
	}
	if allowance.Cmp(required) < 0 {
		return res, i18n.NewError(ctx, msgs.MsgMultiVaultApprovalFailed, res.TransactionHash, required, allowance)
	}
	return res, nil
}
