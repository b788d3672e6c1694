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
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTermID(t *testing.T) {
	ctx := context.Background()

	hexID := "0x" + strings.Repeat("0f", 32)
	id, err := ParseTermID(ctx, hexID)
	require.NoError(t, err)
	assert.Equal(t, hexID, id.String())
	assert.Len(t, id.Bytes(), 32)
	assert.False(t, id.IsZero())

	// Prefix optional
	id2, err := ParseTermID(ctx, strings.Repeat("0f", 32))
	require.NoError(t, err)
	assert.True(t, id.Equals(id2))

	_, err = ParseTermID(ctx, "0x1234")
	assert.Regexp(t, "IN010300", err)

	_, err = ParseTermID(ctx, "0x"+strings.Repeat("zz", 32))
	assert.Regexp(t, "IN010300", err)

	assert.Panics(t, func() {
		MustParseTermID("not an id")
	})
}

func TestTermIDJSON(t *testing.T) {
	id := MustParseTermID("0x" + strings.Repeat("ee", 32))

	b, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(b))

	var back TermID
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equals(id))

	assert.Error(t, json.Unmarshal([]byte(`"0x00"`), &back))
	assert.Error(t, json.Unmarshal([]byte(`42`), &back))
}

func TestTermIDZero(t *testing.T) {
	var zero TermID
	assert.True(t, zero.IsZero())
	assert.False(t, zero.Equals(nil))
	assert.Equal(t, "0x"+strings.Repeat("00", 32), zero.String())
}
