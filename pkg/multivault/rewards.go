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
	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// CurrentEpoch is the TrustBonding epoch in progress
func (c *Client) CurrentEpoch(ctx context.Context) (*big.Int, error) {
	return c.epochView(ctx, c.tbCurrentEpoch)
}

// PreviousEpoch is the most recently completed TrustBonding epoch
func (c *Client) PreviousEpoch(ctx context.Context) (*big.Int, error) {
	return c.epochView(ctx, c.tbPreviousEpoch)
}

func (c *Client) epochView(ctx context.Context, fn ethclient.ABIFunctionClient) (*big.Int, error) {
	var out struct {
		Epoch *fftypes.FFBigInt `json:"epoch"`
	}
	err := fn.R(ctx).To(c.bondingAddr).Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return out.Epoch.Int(), nil
}

// GetUserInfo reads the full TrustBonding state for an account.
// A nil account means the client's own sending account.
func (c *Client) GetUserInfo(ctx context.Context, account *ethtypes.Address0xHex) (*UserInfo, error) {
	if account == nil {
		account = c.from
	}
	var out struct {
		Info UserInfo `json:"info"`
	}
	err := c.tbUserInfo.R(ctx).To(c.bondingAddr).
		Input(map[string]any{"account": account.String()}).
		Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return &out.Info, nil
}

// ClaimableRewards reads the rewards an account could claim right now
func (c *Client) ClaimableRewards(ctx context.Context, account *ethtypes.Address0xHex) (*big.Int, error) {
	if account == nil {
		account = c.from
	}
	var out struct {
		Claimable *fftypes.FFBigInt `json:"claimable"`
	}
	err := c.tbClaimable.R(ctx).To(c.bondingAddr).
		Input(map[string]any{"account": account.String()}).
		Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return out.Claimable.Int(), nil
}

// GetUserApy reads the current and maximum reward rates for an account
func (c *Client) GetUserApy(ctx context.Context, account *ethtypes.Address0xHex) (*UserApy, error) {
	if account == nil {
		account = c.from
	}
	var out UserApy
	err := c.tbUserApy.R(ctx).To(c.bondingAddr).
		Input(map[string]any{"account": account.String()}).
		Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ClaimRewards claims the sending account's accrued TrustBonding rewards to
// itself. Nothing bonded or nothing claimable fails before submission - a
// claim transaction that would pay nothing never reaches the chain.
func (c *Client) ClaimRewards(ctx context.Context) (*ClaimResult, error) {
	info, err := c.GetUserInfo(ctx, c.from)
	if err != nil {
		return nil, err
	}
	if info.BondedBalance.Int().Sign() == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultNothingBonded, c.from)
	}

	claimable, err := c.ClaimableRewards(ctx, c.from)
	if err != nil {
		return nil, err
	}
	if claimable.Sign() == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultNothingClaimable, c.from)
	}
	log.L(ctx).Infof("Claiming %s rewards for %s", claimable, c.from)

	req := c.tbClaimRewards.R(ctx).To(c.bondingAddr).
		Input(map[string]any{"recipient": c.from.String()})
	tx, err := c.submitAndWait(ctx, "claimRewards", req, c.gasClaim)
	if err != nil {
		return nil, err
	}
	return &ClaimResult{Tx: tx, Claimed: (*fftypes.FFBigInt)(claimable)}, nil
}
