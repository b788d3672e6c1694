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

	"github.com/0xIntuition/intuition-go/pkg/ethclient"
	"github.com/hyperledger/firefly-common/pkg/fftypes"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// CalculateAtomID derives the term ID the given atom data would occupy.
// Derivation is a remote pure view - the contract owns the ID scheme.
func (c *Client) CalculateAtomID(ctx context.Context, atomData []byte) (*TermID, error) {
	var out struct {
		TermID TermID `json:"termId"`
	}
	err := c.mvCalculateAtomID.R(ctx).To(c.mvAddr).
		Input(map[string]any{"atomData": ethtypes.HexBytes0xPrefix(atomData).String()}).
		Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return &out.TermID, nil
}

// CalculateTripleID derives the term ID for a subject-predicate-object triple
func (c *Client) CalculateTripleID(ctx context.Context, subjectID, predicateID, objectID TermID) (*TermID, error) {
	var out struct {
		TermID TermID `json:"termId"`
	}
	err := c.mvCalculateTripleID.R(ctx).To(c.mvAddr).
		Input(map[string]any{
			"subjectId":   subjectID.String(),
			"predicateId": predicateID.String(),
			"objectId":    objectID.String(),
		}).
		Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return &out.TermID, nil
}

// IsTermCreated reports whether a term (atom or triple) exists on-chain
func (c *Client) IsTermCreated(ctx context.Context, id TermID) (bool, error) {
	var out struct {
		Created bool `json:"created"`
	}
	err := c.mvIsTermCreated.R(ctx).To(c.mvAddr).
		Input(map[string]any{"id": id.String()}).
		Output(&out).Call()
	if err != nil {
		return false, err
	}
	return out.Created, nil
}

// AtomCost is the protocol fee for creating one atom, excluding any deposit
func (c *Client) AtomCost(ctx context.Context) (*big.Int, error) {
	return c.costView(ctx, c.mvAtomCost)
}

// TripleCost is the protocol fee for creating one triple, excluding any deposit
func (c *Client) TripleCost(ctx context.Context) (*big.Int, error) {
	return c.costView(ctx, c.mvTripleCost)
}

func (c *Client) costView(ctx context.Context, fn ethclient.ABIFunctionClient) (*big.Int, error) {
	var out struct {
		Cost *fftypes.FFBigInt `json:"cost"`
	}
	err := fn.R(ctx).To(c.mvAddr).Output(&out).Call()
	if err != nil {
		return nil, err
	}
	return out.Cost.Int(), nil
}
