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

// CreateTriple creates a triple vault over three existing atoms. All three
// referenced terms must already exist - a triple can never point at a term
// the chain does not know. Idempotent in the same way as CreateAtom.
func (c *Client) CreateTriple(ctx context.Context, subjectID, predicateID, objectID TermID, deposit *big.Int) (*CreateResult, error) {
	if deposit == nil {
		deposit = new(big.Int)
	}

	refs := []struct {
		kind string
		id   TermID
	}{
		{"subject", subjectID},
		{"predicate", predicateID},
		{"object", objectID},
	}
	for _, ref := range refs {
		exists, err := c.IsTermCreated(ctx, ref.id)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, i18n.NewError(ctx, msgs.MsgMultiVaultReferencedTermMissing, ref.kind, ref.id)
		}
	}

	termID, err := c.CalculateTripleID(ctx, subjectID, predicateID, objectID)
	if err != nil {
		return nil, err
	}
	exists, err := c.IsTermCreated(ctx, *termID)
	if err != nil {
		return nil, err
	}
	if exists {
		log.L(ctx).Infof("Triple %s already exists", termID)
		return &CreateResult{TermID: *termID, AlreadyExisted: true}, nil
	}

	cost, err := c.TripleCost(ctx)
	if err != nil {
		return nil, err
	}
	total := new(big.Int).Add(cost, deposit)

	approval, err := c.fundSpend(ctx, total)
	if err != nil {
		return nil, err
	}

	req := c.mvCreateTriples.R(ctx).To(c.mvAddr).
		Input(map[string]any{
			"subjectIds":   []any{subjectID.String()},
			"predicateIds": []any{predicateID.String()},
			"objectIds":    []any{objectID.String()},
			"assets":       []any{deposit.String()},
		})
	tx, err := c.submitAndWait(ctx, "createTriples", req, c.gasCreateTriple)
	if err != nil {
		return nil, err
	}

	res := &CreateResult{TermID: *termID, Tx: tx, Approval: approval}
	var ev TripleCreatedEvent
	if extractEvent(ctx, tx.Receipt(), c.mvAddr, EventTripleCreated, &ev) {
		res.TermID = ev.TermID
	}
	return res, nil
}
