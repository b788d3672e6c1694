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
	"sync"
	"time"

	"github.com/0xIntuition/intuition-go/internal/confutil"
	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/retry"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Client orchestrates the MultiVault, TrustBonding and WTRUST contracts for a
// single sending account (the one bound to the EthClient's signer).
//
// All operations submit at most the transactions they describe - validation
// failures happen before anything reaches the chain. Submission paths for the
// account are serialized, so two concurrent operations cannot race a nonce.
type Client struct {
	ec   ethclient.EthClient
	from *ethtypes.Address0xHex

	mvAddr      *ethtypes.Address0xHex
	tokenAddr   *ethtypes.Address0xHex
	bondingAddr *ethtypes.Address0xHex

	gasApprove      uint64
	gasCreateAtom   uint64
	gasCreateTriple uint64
	gasDeposit      uint64
	gasRedeem       uint64
	gasClaim        uint64

	confirmTimeout time.Duration
	receiptRetry   retry.Retry

	// nextNonce is allocated under txLock, seeded once from the node. The
	// node count only reflects mined transactions, so it cannot be re-read
	// per submission while earlier transactions are still in flight.
	txLock    sync.Mutex
	nextNonce *uint64

	mvCreateAtoms       ethclient.ABIFunctionClient
	mvCreateTriples     ethclient.ABIFunctionClient
	mvCalculateAtomID   ethclient.ABIFunctionClient
	mvCalculateTripleID ethclient.ABIFunctionClient
	mvIsTermCreated     ethclient.ABIFunctionClient
	mvAtomCost          ethclient.ABIFunctionClient
	mvTripleCost        ethclient.ABIFunctionClient
	mvPreviewDeposit    ethclient.ABIFunctionClient
	mvDeposit           ethclient.ABIFunctionClient
	mvPreviewRedeem     ethclient.ABIFunctionClient
	mvRedeem            ethclient.ABIFunctionClient
	mvGetShares         ethclient.ABIFunctionClient

	tbCurrentEpoch  ethclient.ABIFunctionClient
	tbPreviousEpoch ethclient.ABIFunctionClient
	tbUserInfo      ethclient.ABIFunctionClient
	tbClaimable     ethclient.ABIFunctionClient
	tbUserApy       ethclient.ABIFunctionClient
	tbClaimRewards  ethclient.ABIFunctionClient

	tokApprove   ethclient.ABIFunctionClient
	tokAllowance ethclient.ABIFunctionClient
	tokBalanceOf ethclient.ABIFunctionClient
}

func New(ctx context.Context, ec ethclient.EthClient, conf *Config) (_ *Client, err error) {
	if conf == nil {
		conf = Defaults
	}
	c := &Client{
		ec:   ec,
		from: ec.Signer().Address(),

		mvAddr:      addrOrDefault(conf.MultiVaultAddress, DefaultMultiVaultAddress),
		tokenAddr:   addrOrDefault(conf.TrustTokenAddress, DefaultTrustTokenAddress),
		bondingAddr: addrOrDefault(conf.TrustBondingAddress, DefaultTrustBondingAddress),

		gasApprove:      confutil.UInt64Min(conf.GasLimits.Approve, 21000, *Defaults.GasLimits.Approve),
		gasCreateAtom:   confutil.UInt64Min(conf.GasLimits.CreateAtom, 21000, *Defaults.GasLimits.CreateAtom),
		gasCreateTriple: confutil.UInt64Min(conf.GasLimits.CreateTriple, 21000, *Defaults.GasLimits.CreateTriple),
		gasDeposit:      confutil.UInt64Min(conf.GasLimits.Deposit, 21000, *Defaults.GasLimits.Deposit),
		gasRedeem:       confutil.UInt64Min(conf.GasLimits.Redeem, 21000, *Defaults.GasLimits.Redeem),
		gasClaim:        confutil.UInt64Min(conf.GasLimits.ClaimRewards, 21000, *Defaults.GasLimits.ClaimRewards),

		confirmTimeout: confutil.DurationMin(conf.Confirmations.Timeout, 0, confutil.Duration(Defaults.Confirmations.Timeout, 2*time.Minute)),
	}
	pollInterval := confutil.DurationMin(conf.Confirmations.PollInterval, 10*time.Millisecond, confutil.Duration(Defaults.Confirmations.PollInterval, 1*time.Second))
	c.receiptRetry = retry.Retry{
		InitialDelay: pollInterval,
		MaximumDelay: pollInterval,
		Factor:       2.0,
	}

	mv, err := ec.ABI(ctx, MultiVaultABI)
	var tb, tok ethclient.ABIClient
	if err == nil {
		tb, err = ec.ABI(ctx, TrustBondingABI)
	}
	if err == nil {
		tok, err = ec.ABI(ctx, TrustERC20ABI)
	}
	if err != nil {
		return nil, err
	}

	fn := func(a ethclient.ABIClient, name string) (fc ethclient.ABIFunctionClient) {
		if err == nil {
			fc, err = a.Function(ctx, name)
		}
		return fc
	}
	c.mvCreateAtoms = fn(mv, "createAtoms")
	c.mvCreateTriples = fn(mv, "createTriples")
	c.mvCalculateAtomID = fn(mv, "calculateAtomId")
	c.mvCalculateTripleID = fn(mv, "calculateTripleId")
	c.mvIsTermCreated = fn(mv, "isTermCreated")
	c.mvAtomCost = fn(mv, "getAtomCost")
	c.mvTripleCost = fn(mv, "getTripleCost")
	c.mvPreviewDeposit = fn(mv, "previewDeposit")
	c.mvDeposit = fn(mv, "deposit")
	c.mvPreviewRedeem = fn(mv, "previewRedeem")
	c.mvRedeem = fn(mv, "redeem")
	c.mvGetShares = fn(mv, "getShares")
	c.tbCurrentEpoch = fn(tb, "currentEpoch")
	c.tbPreviousEpoch = fn(tb, "previousEpoch")
	c.tbUserInfo = fn(tb, "getUserInfo")
	c.tbClaimable = fn(tb, "getUserCurrentClaimableRewards")
	c.tbUserApy = fn(tb, "getUserApy")
	c.tbClaimRewards = fn(tb, "claimRewards")
	c.tokApprove = fn(tok, "approve")
	c.tokAllowance = fn(tok, "allowance")
	c.tokBalanceOf = fn(tok, "balanceOf")
	if err != nil {
		return nil, err
	}
	return c, nil
}

func addrOrDefault(addr, def *ethtypes.Address0xHex) *ethtypes.Address0xHex {
	if addr == nil {
		return def
	}
	return addr
}

// From is the sending account all operations act for
func (c *Client) From() *ethtypes.Address0xHex {
	return c.from
}

// MultiVaultAddress is the resolved protocol contract address
func (c *Client) MultiVaultAddress() *ethtypes.Address0xHex {
	return c.mvAddr
}

func (c *Client) TrustBalanceOf(ctx context.Context, account *ethtypes.Address0xHex) (*big.Int, error) {
	var out struct {
		Balance *fftypes.FFBigInt `json:"balance"`
	}
	err := c.tokBalanceOf.R(ctx).To(c.tokenAddr).
		Input(map[string]any{"account": account.String()}).
		Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return out.Balance.Int(), nil
}

func (c *Client) TrustAllowance(ctx context.Context, owner *ethtypes.Address0xHex) (*big.Int, error) {
	var out struct {
		Remaining *fftypes.FFBigInt `json:"remaining"`
	}
	err := c.tokAllowance.R(ctx).To(c.tokenAddr).
		Input(map[string]any{
			"owner":   owner.String(),
			"spender": c.mvAddr.String(),
		}).
		Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return out.Remaining.Int(), nil
}
