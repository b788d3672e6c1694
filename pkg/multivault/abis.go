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
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

// The MultiVault protocol surface used by this SDK. Only the functions and
// events the orchestration paths touch - not the full contract.
var MultiVaultABI = abi.ABI{
	{
		Type: abi.Function,
		Name: "createAtoms",
		Inputs: abi.ParameterArray{
			{Name: "atomDatas", Type: "bytes[]"},
			{Name: "assets", Type: "uint256[]"},
		},
		Outputs: abi.ParameterArray{
			{Name: "termIds", Type: "bytes32[]"},
		},
	},
	{
		Type: abi.Function,
		Name: "createTriples",
		Inputs: abi.ParameterArray{
			{Name: "subjectIds", Type: "bytes32[]"},
			{Name: "predicateIds", Type: "bytes32[]"},
			{Name: "objectIds", Type: "bytes32[]"},
			{Name: "assets", Type: "uint256[]"},
		},
		Outputs: abi.ParameterArray{
			{Name: "termIds", Type: "bytes32[]"},
		},
	},
	{
		Type: abi.Function,
		Name: "calculateAtomId",
		Inputs: abi.ParameterArray{
			{Name: "atomData", Type: "bytes"},
		},
		Outputs: abi.ParameterArray{
			{Name: "termId", Type: "bytes32"},
		},
	},
	{
		Type: abi.Function,
		Name: "calculateTripleId",
		Inputs: abi.ParameterArray{
			{Name: "subjectId", Type: "bytes32"},
			{Name: "predicateId", Type: "bytes32"},
			{Name: "objectId", Type: "bytes32"},
		},
		Outputs: abi.ParameterArray{
			{Name: "termId", Type: "bytes32"},
		},
	},
	{
		Type: abi.Function,
		Name: "isTermCreated",
		Inputs: abi.ParameterArray{
			{Name: "id", Type: "bytes32"},
		},
		Outputs: abi.ParameterArray{
			{Name: "created", Type: "bool"},
		},
	},
	{
		Type:   abi.Function,
		Name:   "getAtomCost",
		Inputs: abi.ParameterArray{},
		Outputs: abi.ParameterArray{
			{Name: "cost", Type: "uint256"},
		},
	},
	{
		Type:   abi.Function,
		Name:   "getTripleCost",
		Inputs: abi.ParameterArray{},
		Outputs: abi.ParameterArray{
			{Name: "cost", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "previewDeposit",
		Inputs: abi.ParameterArray{
			{Name: "termId", Type: "bytes32"},
			{Name: "curveId", Type: "uint256"},
			{Name: "assets", Type: "uint256"},
		},
		Outputs: abi.ParameterArray{
			{Name: "shares", Type: "uint256"},
			{Name: "assetsAfterFees", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "deposit",
		Inputs: abi.ParameterArray{
			{Name: "receiver", Type: "address"},
			{Name: "termId", Type: "bytes32"},
			{Name: "curveId", Type: "uint256"},
			{Name: "minShares", Type: "uint256"},
		},
		Outputs: abi.ParameterArray{
			{Name: "shares", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "previewRedeem",
		Inputs: abi.ParameterArray{
			{Name: "termId", Type: "bytes32"},
			{Name: "curveId", Type: "uint256"},
			{Name: "shares", Type: "uint256"},
		},
		Outputs: abi.ParameterArray{
			{Name: "assetsAfterFees", Type: "uint256"},
			{Name: "sharesUsed", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "redeem",
		Inputs: abi.ParameterArray{
			{Name: "receiver", Type: "address"},
			{Name: "termId", Type: "bytes32"},
			{Name: "curveId", Type: "uint256"},
			{Name: "shares", Type: "uint256"},
			{Name: "minAssets", Type: "uint256"},
		},
		Outputs: abi.ParameterArray{
			{Name: "assets", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "getShares",
		Inputs: abi.ParameterArray{
			{Name: "account", Type: "address"},
			{Name: "termId", Type: "bytes32"},
			{Name: "curveId", Type: "uint256"},
		},
		Outputs: abi.ParameterArray{
			{Name: "shares", Type: "uint256"},
		},
	},
	EventAtomCreated,
	EventTripleCreated,
	EventDeposited,
	EventRedeemed,
}

var EventAtomCreated = &abi.Entry{
	Type: abi.Event,
	Name: "AtomCreated",
	Inputs: abi.ParameterArray{
		{Name: "creator", Type: "address", Indexed: true},
		{Name: "termId", Type: "bytes32", Indexed: true},
		{Name: "atomData", Type: "bytes"},
		{Name: "atomWallet", Type: "address"},
	},
}

var EventTripleCreated = &abi.Entry{
	Type: abi.Event,
	Name: "TripleCreated",
	Inputs: abi.ParameterArray{
		{Name: "creator", Type: "address", Indexed: true},
		{Name: "termId", Type: "bytes32", Indexed: true},
		{Name: "subjectId", Type: "bytes32"},
		{Name: "predicateId", Type: "bytes32"},
		{Name: "objectId", Type: "bytes32"},
	},
}

var EventDeposited = &abi.Entry{
	Type: abi.Event,
	Name: "Deposited",
	Inputs: abi.ParameterArray{
		{Name: "sender", Type: "address", Indexed: true},
		{Name: "receiver", Type: "address", Indexed: true},
		{Name: "termId", Type: "bytes32", Indexed: true},
		{Name: "curveId", Type: "uint256"},
		{Name: "assets", Type: "uint256"},
		{Name: "assetsAfterFees", Type: "uint256"},
		{Name: "shares", Type: "uint256"},
		{Name: "totalShares", Type: "uint256"},
		{Name: "vaultType", Type: "uint8"},
	},
}

var EventRedeemed = &abi.Entry{
	Type: abi.Event,
	Name: "Redeemed",
	Inputs: abi.ParameterArray{
		{Name: "sender", Type: "address", Indexed: true},
		{Name: "receiver", Type: "address", Indexed: true},
		{Name: "termId", Type: "bytes32", Indexed: true},
		{Name: "curveId", Type: "uint256"},
		{Name: "shares", Type: "uint256"},
		{Name: "assets", Type: "uint256"},
		{Name: "assetsAfterFees", Type: "uint256"},
		{Name: "totalShares", Type: "uint256"},
		{Name: "vaultType", Type: "uint8"},
	},
}

// TrustBonding reward surface
var TrustBondingABI = abi.ABI{
	{
		Type:   abi.Function,
		Name:   "currentEpoch",
		Inputs: abi.ParameterArray{},
		Outputs: abi.ParameterArray{
			{Name: "epoch", Type: "uint256"},
		},
	},
	{
		Type:   abi.Function,
		Name:   "previousEpoch",
		Inputs: abi.ParameterArray{},
		Outputs: abi.ParameterArray{
			{Name: "epoch", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "getUserInfo",
		Inputs: abi.ParameterArray{
			{Name: "account", Type: "address"},
		},
		Outputs: abi.ParameterArray{
			{Name: "info", Type: "tuple", Components: abi.ParameterArray{
				{Name: "personalUtilization", Type: "uint256"},
				{Name: "eligibleRewards", Type: "uint256"},
				{Name: "maxRewards", Type: "uint256"},
				{Name: "lockedAmount", Type: "uint256"},
				{Name: "lockEnd", Type: "uint256"},
				{Name: "bondedBalance", Type: "uint256"},
			}},
		},
	},
	{
		Type: abi.Function,
		Name: "getUserCurrentClaimableRewards",
		Inputs: abi.ParameterArray{
			{Name: "account", Type: "address"},
		},
		Outputs: abi.ParameterArray{
			{Name: "claimable", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "getUserApy",
		Inputs: abi.ParameterArray{
			{Name: "account", Type: "address"},
		},
		Outputs: abi.ParameterArray{
			{Name: "currentApy", Type: "uint256"},
			{Name: "maxApy", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "claimRewards",
		Inputs: abi.ParameterArray{
			{Name: "recipient", Type: "address"},
		},
		Outputs: abi.ParameterArray{},
	},
}

// The WTRUST ERC20 surface used for funding vault operations
var TrustERC20ABI = abi.ABI{
	{
		Type: abi.Function,
		Name: "approve",
		Inputs: abi.ParameterArray{
			{Name: "spender", Type: "address"},
			{Name: "amount", Type: "uint256"},
		},
		Outputs: abi.ParameterArray{
			{Name: "ok", Type: "bool"},
		},
	},
	{
		Type: abi.Function,
		Name: "allowance",
		Inputs: abi.ParameterArray{
			{Name: "owner", Type: "address"},
			{Name: "spender", Type: "address"},
		},
		Outputs: abi.ParameterArray{
			{Name: "remaining", Type: "uint256"},
		},
	},
	{
		Type: abi.Function,
		Name: "balanceOf",
		Inputs: abi.ParameterArray{
			{Name: "account", Type: "address"},
		},
		Outputs: abi.ParameterArray{
			{Name: "balance", Type: "uint256"},
		},
	},
}
