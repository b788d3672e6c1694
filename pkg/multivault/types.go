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
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/0xIntuition/intuition-go/internal/msgs"
	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// TermID is the 32 byte identifier of an atom or triple vault.
// IDs are always derived on-chain (calculateAtomId/calculateTripleId),
// never computed locally.
type TermID [32]byte

func ParseTermID(ctx context.Context, s string) (*TermID, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil || len(b) != 32 {
		return nil, i18n.NewError(ctx, msgs.MsgMultiVaultInvalidTermID, s)
	}
	var id TermID
	copy(id[:], b)
	return &id, nil
}

func MustParseTermID(s string) *TermID {
	id, err := ParseTermID(context.Background(), s)
	if err != nil {
		panic(err)
	}
	return id
}

func (id TermID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

func (id TermID) Bytes() []byte {
	return id[:]
}

func (id TermID) IsZero() bool {
	return id == TermID{}
}

func (id TermID) Equals(other *TermID) bool {
	return other != nil && id == *other
}

func (id TermID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

func (id *TermID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTermID(context.Background(), s)
	if err != nil {
		return err
	}
	*id = *parsed
	return nil
}

// TxStatus is the lifecycle state of a submitted transaction
type TxStatus string

const (
	TxBuilt     TxStatus = "built"     // raw payload assembled, nonce and gas bound
	TxSigned    TxStatus = "signed"    // signature applied
	TxSubmitted TxStatus = "submitted" // accepted into the node mempool
	TxConfirmed TxStatus = "confirmed" // mined with success status
	TxReverted  TxStatus = "reverted"  // mined with failure status
	TxTimedOut  TxStatus = "timed_out" // no receipt within the confirmation window
)

// TxResult describes the final observed state of one submitted transaction
type TxResult struct {
	Status          TxStatus                  `json:"status"`
	TransactionHash ethtypes.HexBytes0xPrefix `json:"transactionHash"`
	BlockNumber     *fftypes.FFBigInt         `json:"blockNumber,omitempty"`
	GasUsed         *fftypes.FFBigInt         `json:"gasUsed,omitempty"`

	receipt *ethclient.TransactionReceipt
}

// Receipt exposes the raw JSON/RPC receipt for a confirmed or reverted transaction
func (r *TxResult) Receipt() *ethclient.TransactionReceipt {
	return r.receipt
}

// CreateResult is returned by CreateAtom and CreateTriple
type CreateResult struct {
	TermID         TermID                 `json:"termId"`
	AlreadyExisted bool                   `json:"alreadyExisted"`
	Tx             *TxResult              `json:"tx,omitempty"`         // nil when AlreadyExisted
	AtomWallet     *ethtypes.Address0xHex `json:"atomWallet,omitempty"` // atoms only, from the creation event
	Approval       *TxResult              `json:"approval,omitempty"`   // set when an approval transaction was needed
}

// DepositResult is returned by Deposit
type DepositResult struct {
	Tx             *TxResult         `json:"tx"`
	Assets         *fftypes.FFBigInt `json:"assets"`
	ExpectedShares *fftypes.FFBigInt `json:"expectedShares"`
	MinShares      *fftypes.FFBigInt `json:"minShares"`
	SharesBefore   *fftypes.FFBigInt `json:"sharesBefore"`
	SharesAfter    *fftypes.FFBigInt `json:"sharesAfter"`
	Event          *DepositedEvent   `json:"event,omitempty"` // nil if the event could not be decoded
	Approval       *TxResult         `json:"approval,omitempty"`
}

// RedeemResult is returned by Redeem
type RedeemResult struct {
	Tx              *TxResult         `json:"tx"`
	RequestedShares *fftypes.FFBigInt `json:"requestedShares"`
	RedeemedShares  *fftypes.FFBigInt `json:"redeemedShares"` // clamped to the held balance
	ExpectedAssets  *fftypes.FFBigInt `json:"expectedAssets"`
	MinAssets       *fftypes.FFBigInt `json:"minAssets"`
	SharesRemaining *fftypes.FFBigInt `json:"sharesRemaining"`
	Event           *RedeemedEvent    `json:"event,omitempty"`
}

// ClaimResult is returned by ClaimRewards
type ClaimResult struct {
	Tx      *TxResult         `json:"tx"`
	Claimed *fftypes.FFBigInt `json:"claimed"` // claimable balance read before submission
}

// UserInfo is the TrustBonding per-account state
type UserInfo struct {
	PersonalUtilization *fftypes.FFBigInt `json:"personalUtilization"`
	EligibleRewards     *fftypes.FFBigInt `json:"eligibleRewards"`
	MaxRewards          *fftypes.FFBigInt `json:"maxRewards"`
	LockedAmount        *fftypes.FFBigInt `json:"lockedAmount"`
	LockEnd             *fftypes.FFBigInt `json:"lockEnd"`
	BondedBalance       *fftypes.FFBigInt `json:"bondedBalance"`
}

// UserApy is the TrustBonding reward rate pair, in basis points
type UserApy struct {
	CurrentApy *fftypes.FFBigInt `json:"currentApy"`
	MaxApy     *fftypes.FFBigInt `json:"maxApy"`
}

// AtomCreatedEvent is raised once per atom on creation
type AtomCreatedEvent struct {
	Creator    *ethtypes.Address0xHex    `json:"creator"`
	TermID     TermID                    `json:"termId"`
	AtomData   ethtypes.HexBytes0xPrefix `json:"atomData"`
	AtomWallet *ethtypes.Address0xHex    `json:"atomWallet"`
}

// TripleCreatedEvent is raised once per triple on creation
type TripleCreatedEvent struct {
	Creator     *ethtypes.Address0xHex `json:"creator"`
	TermID      TermID                 `json:"termId"`
	SubjectID   TermID                 `json:"subjectId"`
	PredicateID TermID                 `json:"predicateId"`
	ObjectID    TermID                 `json:"objectId"`
}

// DepositedEvent is raised on every vault deposit
type DepositedEvent struct {
	Sender          *ethtypes.Address0xHex `json:"sender"`
	Receiver        *ethtypes.Address0xHex `json:"receiver"`
	TermID          TermID                 `json:"termId"`
	CurveID         *fftypes.FFBigInt      `json:"curveId"`
	Assets          *fftypes.FFBigInt      `json:"assets"`
	AssetsAfterFees *fftypes.FFBigInt      `json:"assetsAfterFees"`
	Shares          *fftypes.FFBigInt      `json:"shares"`
	TotalShares     *fftypes.FFBigInt      `json:"totalShares"`
	VaultType       *fftypes.FFBigInt      `json:"vaultType"`
}

// RedeemedEvent is raised on every vault redemption
type RedeemedEvent struct {
	Sender          *ethtypes.Address0xHex `json:"sender"`
	Receiver        *ethtypes.Address0xHex `json:"receiver"`
	TermID          TermID                 `json:"termId"`
	CurveID         *fftypes.FFBigInt      `json:"curveId"`
	Shares          *fftypes.FFBigInt      `json:"shares"`
	Assets          *fftypes.FFBigInt      `json:"assets"`
	AssetsAfterFees *fftypes.FFBigInt      `json:"assetsAfterFees"`
	TotalShares     *fftypes.FFBigInt      `json:"totalShares"`
	VaultType       *fftypes.FFBigInt      `json:"vaultType"`
}
