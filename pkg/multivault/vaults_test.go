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
	"math/big"
	"strings"
	"testing"

	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testVaultID = MustParseTermID("0x" + strings.Repeat("cd", 32))

func TestDepositOk(t *testing.T) {
	sharesReads := 0
	node := &testNode{
		views: map[string]viewFn{
			"isTermCreated": func(in map[string]interface{}) (string, error) {
				return `{"created":true}`, nil
			},
			"balanceOf": func(in map[string]interface{}) (string, error) {
				return `{"balance":"5000000000000000000"}`, nil
			},
			"allowance": func(in map[string]interface{}) (string, error) {
				return `{"remaining":"5000000000000000000"}`, nil
			},
			"previewDeposit": func(in map[string]interface{}) (string, error) {
				assert.Equal(t, testVaultID.String(), in["termId"])
				assert.Equal(t, "1", in["curveId"])
				assert.Equal(t, "1000000000000000000", in["assets"])
				return `{"shares":"1000","assetsAfterFees":"995000000000000000"}`, nil
			},
			"getShares": func(in map[string]interface{}) (string, error) {
				sharesReads++
				if sharesReads == 1 {
					return `{"shares":"0"}`, nil
				}
				return `{"shares":"1000"}`, nil
			},
		},
	}

	var c *Client
	node.receiptFor = func(tx *submittedTX) *ethclient.TransactionReceipt {
		return successReceipt(tx.hash, makeEventLog(t, EventDeposited,
			[]ethtypes.HexBytes0xPrefix{addrTopic(c.From()), addrTopic(c.From()), idTopic(testVaultID)},
			`{"curveId":"1","assets":"1000000000000000000","assetsAfterFees":"995000000000000000","shares":"1000","totalShares":"123456","vaultType":"0"}`,
			DefaultMultiVaultAddress))
	}

	ctx, c, done := newVaultTestbed(t, node, nil)
	defer done()

	res, err := c.Deposit(ctx, *testVaultID, nil, big.NewInt(1000000000000000000), 100)
	require.NoError(t, err)

	// 100bps tolerance floors the 1000 share quote to a 990 minimum
	assert.Equal(t, int64(990), res.MinShares.Int64())
	assert.Equal(t, int64(1000), res.ExpectedShares.Int64())
	assert.Equal(t, int64(0), res.SharesBefore.Int64())
	assert.Equal(t, int64(1000), res.SharesAfter.Int64())
	assert.Nil(t, res.Approval)
	assert.Equal(t, TxConfirmed, res.Tx.Status)

	require.NotNil(t, res.Event)
	assert.Equal(t, int64(1000), res.Event.Shares.Int64())
	assert.Equal(t, int64(123456), res.Event.TotalShares.Int64())
	assert.Equal(t, c.From().String(), res.Event.Receiver.String())

	dep := node.lastSubmitted()
	assert.Equal(t, "deposit", dep.fn)
	assert.Equal(t, int64(200000), dep.gasLimit)
	assert.Equal(t, c.From().String(), dep.inputs["receiver"])
	assert.Equal(t, testVaultID.String(), dep.inputs["termId"])
	assert.Equal(t, "1", dep.inputs["curveId"])
	assert.Equal(t, "990", dep.inputs["minShares"])
}

func TestDepositTermNotFound(t *testing.T) {
	node := &testNode{
		views: map[string]viewFn{
			"isTermCreated": func(in map[string]interface{}) (string, error) {
				return `{"created":false}`, nil
			},
		},
	}
	ctx, c, done := newVaultTestbed(t, node, nil)
	defer done()

	_, err := c.Deposit(ctx, *testVaultID, nil, big.NewInt(100), 0)
	assert.Regexp(t, "IN010301", err)
	assert.Empty(t, node.submitted)
}

func TestDepositValidation(t *testing.T) {
	ctx, c, done := newVaultTestbed(t, &testNode{}, nil)
	defer done()

	_, err := c.Deposit(ctx, *testVaultID, nil, nil, 0)
	assert.Regexp(t, "IN010312", err)

	_, err = c.Deposit(ctx, *testVaultID, nil, big.NewInt(0), 0)
	assert.Regexp(t, "IN010312", err)

	_, err = c.Deposit(ctx, *testVaultID, nil, big.NewInt(100), 10001)
	assert.Regexp(t, "IN010309", err)

	_, err = c.Deposit(ctx, *testVaultID, nil, big.NewInt(100), -1)
	assert.Regexp(t, "IN010309", err)
}

func TestRedeemClampsToHeld(t *testing.T) {
	sharesReads := 0
	node := &testNode{
		views: map[string]viewFn{
			"getShares": func(in map[string]interface{}) (string, error) {
				sharesReads++
				if sharesReads == 1 {
					return `{"shares":"500"}`, nil
				}
				return `{"shares":"0"}`, nil
			},
			"previewRedeem": func(in map[string]interface{}) (string, error) {
				// Quoted on the clamped share count, not the request
				assert.Equal(t, "500", in["shares"])
				return `{"assetsAfterFees":"2000","sharesUsed":"500"}`, nil
			},
		},
	}

	var c *Client
	node.receiptFor = func(tx *submittedTX) *ethclient.TransactionReceipt {
		return successReceipt(tx.hash, makeEventLog(t, EventRedeemed,
			[]ethtypes.HexBytes0xPrefix{addrTopic(c.From()), addrTopic(c.From()), idTopic(testVaultID)},
			`{"curveId":"1","shares":"500","assets":"2010","assetsAfterFees":"2000","totalShares":"99","vaultType":"0"}`,
			DefaultMultiVaultAddress))
	}

	ctx, c, done := newVaultTestbed(t, node, nil)
	defer done()

	res, err := c.Redeem(ctx, *testVaultID, nil, big.NewInt(1000), 250)
	require.NoError(t, err)

	assert.Equal(t, int64(1000), res.RequestedShares.Int64())
	assert.Equal(t, int64(500), res.RedeemedShares.Int64())
	assert.Equal(t, int64(2000), res.ExpectedAssets.Int64())
	assert.Equal(t, int64(1950), res.MinAssets.Int64()) // 2000 less 250bps
	assert.Equal(t, int64(0), res.SharesRemaining.Int64())
	require.NotNil(t, res.Event)
	assert.Equal(t, int64(2000), res.Event.AssetsAfterFees.Int64())

	redeem := node.lastSubmitted()
	assert.Equal(t, "redeem", redeem.fn)
	assert.Equal(t, "500", redeem.inputs["shares"])
	assert.Equal(t, "1950", redeem.inputs["minAssets"])
}

func TestRedeemNothingHeld(t *testing.T) {
	node := &testNode{
		views: map[string]viewFn{
			"getShares": func(in map[string]interface{}) (string, error) {
				return `{"shares":"0"}`, nil
			},
		},
	}
	ctx, c, done := newVaultTestbed(t, node, nil)
	defer done()

	_, err := c.Redeem(ctx, *testVaultID, nil, big.NewInt(100), 0)
	assert.Regexp(t, "IN010306", err)
	assert.Empty(t, node.submitted)
}

func TestApplySlippageFloors(t *testing.T) {
	assert.Equal(t, int64(990), applySlippage(big.NewInt(1000), 100).Int64())
	assert.Equal(t, int64(998), applySlippage(big.NewInt(999), 10).Int64())
	assert.Equal(t, int64(1000), applySlippage(big.NewInt(1000), 0).Int64())
	assert.Equal(t, int64(0), applySlippage(big.NewInt(1000), 10000).Int64())
}
