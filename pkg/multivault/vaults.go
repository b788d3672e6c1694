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
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// DefaultCurveID is the linear bonding curve every term vault carries
var DefaultCurveID = big.NewInt(1)

const slippageDenominator = 10000

// GetShares reads the share balance an account holds in one term vault.
// A nil account means the client's own sending account.
func (c *Client) GetShares(ctx context.Context, account *ethtypes.Address0xHex, termID TermID, curveID *big.Int) (*big.Int, error) {
	if account == nil {
		account = c.from
	}
	var out struct {
		Shares *fftypes.FFBigInt `json:"shares"`
	}
	err := c.mvGetShares.R(ctx).To(c.mvAddr).
		Input(map[string]any{
			"account": account.String(),
			"termId":  termID.String(),
			"curveId": curveOrDefault(curveID).String(),
		}).
		Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return out.Shares.Int(), nil
}

// PreviewDeposit quotes the shares a deposit of the given assets would mint
// right now, along with the assets remaining after protocol fees
func (c *Client) PreviewDeposit(ctx context.Context, termID TermID, curveID, assets *big.Int) (shares, assetsAfterFees *big.Int, err error) {
	var out struct {
		Shares          *fftypes.FFBigInt `json:"shares"`
		AssetsAfterFees *fftypes.FFBigInt `json:"assetsAfterFees"`
	}
	err = c.mvPreviewDeposit.R(ctx).To(c.mvAddr).
		Input(map[string]any{
			"termId":  termID.String(),
			"curveId": curveOrDefault(curveID).String(),
			"assets":  assets.String(),
		}).
		Output(&out).Call()
	if err != nil {
		return nil, nil, err
	}
	return out.Shares.Int(), out.AssetsAfterFees.Int(), nil
}

// PreviewRedeem quotes the assets (after fees) redeeming the given shares
// would return right now
func (c *Client) PreviewRedeem(ctx context.Context, termID TermID, curveID, shares *big.Int) (assetsAfterFees, sharesUsed *big.Int, err error) {
	var out struct {
		AssetsAfterFees *fftypes.FFBigInt `json:"assetsAfterFees"`
		SharesUsed      *fftypes.FFBigInt `json:"sharesUsed"`
	}
	err = c.mvPreviewRedeem.R(ctx).To(c.mvAddr).
		Input(map[string]any{
			"termId":  termID.String(),
			"curveId": curveOrDefault(curveID).String(),
			"shares":  shares.String(),
		}).
		Output(&out).Call()
	if err != nil {
		return nil, nil, err
	}
	return out.AssetsAfterFees.Int(), out.SharesUsed.Int(), nil
}

// Deposit stakes WTRUST into a term vault for the sending account.
//
// The quote from previewDeposit establishes the expected shares, and the
// slippage tolerance (basis points) sets the minShares bound the contract
// enforces - the price moving past the bound between quote and execution
// reverts the transaction rather than minting fewer shares than agreed.
func (c *Client) Deposit(ctx context.Context, termID TermID, curveID, assets *big.Int, slippageBps int64) (*DepositResult, error) {
	if assets == nil || assets.Sign() <= 0 {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultInvalidAmount, assets)
	}
	if slippageBps < 0 || slippageBps > slippageDenominator {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultInvalidSlippage, slippageBps)
	}
	curveID = curveOrDefault(curveID)

	exists, err := c.IsTermCreated(ctx, termID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultTermNotFound, termID)
	}

	approval, err := c.fundSpend(ctx, assets)
	if err != nil {
		return nil, err
	}

	expectedShares, _, err := c.PreviewDeposit(ctx, termID, curveID, assets)
	if err != nil {
		return nil, err
	}
	minShares := applySlippage(expectedShares, slippageBps)

	sharesBefore, err := c.GetShares(ctx, c.from, termID, curveID)
	if err != nil {
		return nil, err
	}
	log.L(ctx).Infof("Depositing %s into term %s (expected=%s min=%s)", assets, termID, expectedShares, minShares)

	req := c.mvDeposit.R(ctx).To(c.mvAddr).
		Input(map[string]any{
			"receiver":  c.from.String(),
			"termId":    termID.String(),
			"curveId":   curveID.String(),
			"minShares": minShares.String(),
		})
	tx, err := c.submitAndWait(ctx, "deposit", req, c.gasDeposit)
	if err != nil {
		return nil, err
	}

	sharesAfter, err := c.GetShares(ctx, c.from, termID, curveID)
	if err != nil {
		return nil, err
	}

	res := &DepositResult{
		Tx:             tx,
		Assets:         (*fftypes.FFBigInt)(assets),
		ExpectedShares: (*fftypes.FFBigInt)(expectedShares),
		MinShares:      (*fftypes.FFBigInt)(minShares),
		SharesBefore:   (*fftypes.FFBigInt)(sharesBefore),
		SharesAfter:    (*fftypes.FFBigInt)(sharesAfter),
		Approval:       approval,
	}
	var ev DepositedEvent
	if extractEvent(ctx, tx.Receipt(), c.mvAddr, EventDeposited, &ev) {
		res.Event = &ev
	}
	return res, nil
}

// Redeem burns shares from a term vault and returns the assets to the sending
// account. The requested share count is clamped to the held balance, so
// asking for more than you hold redeems everything rather than reverting.
func (c *Client) Redeem(ctx context.Context, termID TermID, curveID, shares *big.Int, slippageBps int64) (*RedeemResult, error) {
	if shares == nil || shares.Sign() <= 0 {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultInvalidAmount, shares)
	}
	if slippageBps < 0 || slippageBps > slippageDenominator {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultInvalidSlippage, slippageBps)
	}
	curveID = curveOrDefault(curveID)

	held, err := c.GetShares(ctx, c.from, termID, curveID)
	if err != nil {
		return nil, err
	}
	if held.Sign() == 0 {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultNothingToRedeem, termID, curveID)
	}
	redeemShares := shares
	if held.Cmp(shares) < 0 {
		log.L(ctx).Debugf("Clamping redemption from %s to held balance %s", shares, held)
		redeemShares = held
	}

	expectedAssets, _, err := c.PreviewRedeem(ctx, termID, curveID, redeemShares)
	if err != nil {
		return nil, err
	}
	minAssets := applySlippage(expectedAssets, slippageBps)
	log.L(ctx).Infof("Redeeming %s shares from term %s (expected=%s min=%s)", redeemShares, termID, expectedAssets, minAssets)

	req := c.mvRedeem.R(ctx).To(c.mvAddr).
		Input(map[string]any{
			"receiver":  c.from.String(),
			"termId":    termID.String(),
			"curveId":   curveID.String(),
			"shares":    redeemShares.String(),
			"minAssets": minAssets.String(),
		})
	tx, err := c.submitAndWait(ctx, "redeem", req, c.gasRedeem)
	if err != nil {
		return nil, err
	}

	remaining, err := c.GetShares(ctx, c.from, termID, curveID)
	if err != nil {
		return nil, err
	}

	res := &RedeemResult{
		Tx:              tx,
		RequestedShares: (*fftypes.FFBigInt)(shares),
		RedeemedShares:  (*fftypes.FFBigInt)(redeemShares),
		ExpectedAssets:  (*fftypes.FFBigInt)(expectedAssets),
		MinAssets:       (*fftypes.FFBigInt)(minAssets),
		SharesRemaining: (*fftypes.FFBigInt)(remaining),
	}
	var ev RedeemedEvent
	if extractEvent(ctx, tx.Receipt(), c.mvAddr, EventRedeemed, &ev) {
		res.Event = &ev
	}
	return res, nil
}

func curveOrDefault(curveID *big.Int) *big.Int {
	if curveID == nil {
		return DefaultCurveID
	}
	return curveID
}

// applySlippage scales an expected amount down by the tolerance in basis
// points, with integer floor division (the conservative direction for a
// minimum bound)
func applySlippage(expected *big.Int, bps int64) *big.Int {
	scaled := new(big.Int).Mul(expected, big.NewInt(slippageDenominator-bps))
	return scaled.Div(scaled, big.NewInt(slippageDenominator))
}
