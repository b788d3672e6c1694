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
	"github.com/0xIntuition/intuition-go/internal/confutil"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Deployed protocol addresses on the Intuition network
var (
	DefaultMultiVaultAddress   = ethtypes.MustNewAddress("0x6E35cF57A41fA15eA0EaE9C33e751b01A784Fe7e")
	DefaultTrustTokenAddress   = ethtypes.MustNewAddress("0x81cFb09cb44f7184Ad934C09F82000701A4bF672")
	DefaultTrustBondingAddress = ethtypes.MustNewAddress("0x635bBD1367B66E7B16a21D6E5A63C812fFC00617")
)

type Config struct {
	MultiVaultAddress   *ethtypes.Address0xHex `yaml:"multiVaultAddress"`
	TrustTokenAddress   *ethtypes.Address0xHex `yaml:"trustTokenAddress"`
	TrustBondingAddress *ethtypes.Address0xHex `yaml:"trustBondingAddress"`
	GasLimits           GasLimitsConfig        `yaml:"gasLimits"`
	Confirmations       ConfirmationsConfig    `yaml:"confirmations"`
}

// GasLimitsConfig fixes the upper bound per operation kind, rather than
// estimating before every submission
type GasLimitsConfig struct {
	Approve      *uint64 `yaml:"approve"`
	CreateAtom   *uint64 `yaml:"createAtom"`
	CreateTriple *uint64 `yaml:"createTriple"`
	Deposit      *uint64 `yaml:"deposit"`
	Redeem       *uint64 `yaml:"redeem"`
	ClaimRewards *uint64 `yaml:"claimRewards"`
}

type ConfirmationsConfig struct {
	PollInterval *string `yaml:"pollInterval"`
	Timeout      *string `yaml:"timeout"`
}

var Defaults = &Config{
	MultiVaultAddress:   DefaultMultiVaultAddress,
	TrustTokenAddress:   DefaultTrustTokenAddress,
	TrustBondingAddress: DefaultTrustBondingAddress,
	GasLimits: GasLimitsConfig{
		Approve:      confutil.P(uint64(100000)),
		CreateAtom:   confutil.P(uint64(400000)),
		CreateTriple: confutil.P(uint64(500000)),
		Deposit:      confutil.P(uint64(200000)),
		Redeem:       confutil.P(uint64(200000)),
		ClaimRewards: confutil.P(uint64(150000)),
	},
	Confirmations: ConfirmationsConfig{
		PollInterval: confutil.P("1s"),
		Timeout:      confutil.P("2m"),
	},
}
