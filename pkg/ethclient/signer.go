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

package ethclient

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/0xIntuition/intuition-go/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
)

// Signer is the capability that holds the private credential for a single
// sending account. The client hands it a 32 byte digest and gets back a
// compact R|S|V signature - the key itself is never exposed.
type Signer interface {
	Address() *ethtypes.Address0xHex
	Sign(ctx context.Context, digest []byte) ([]byte, error)
	Close()
}

type walletSigner struct {
	keypair *secp256k1.KeyPair
}

// NewWalletSigner wraps an in-memory secp256k1 keypair loaded from a hex
// encoded private key (with or without 0x prefix).
func NewWalletSigner(ctx context.Context, privateKeyHex string) (Signer, error) {
	keyBytes, err := hex.DecodeString(strings.TrimPrefix(privateKeyHex, "0x"))
	if err != nil || len(keyBytes) != 32 {
		return nil, i18n.NewError(ctx, msgs.MsgEthClientInvalidPrivateKey)
	}
	keypair, err := secp256k1.NewSecp256k1KeyPair(keyBytes)
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgEthClientInvalidPrivateKey)
	}
	return &walletSigner{keypair: keypair}, nil
}

// NewRandomWalletSigner generates an ephemeral keypair - useful in tests.
func NewRandomWalletSigner(ctx context.Context) (Signer, error) {
	keypair, err := secp256k1.GenerateSecp256k1KeyPair()
	if err != nil {
		return nil, err
	}
	return &walletSigner{keypair: keypair}, nil
}

func (ws *walletSigner) Address() *ethtypes.Address0xHex {
	return &ws.keypair.Address
}

func (ws *walletSigner) Sign(ctx context.Context, digest []byte) ([]byte, error) {
	sig, err := ws.keypair.SignDirect(digest)
	if err != nil {
		return nil, err
	}
	return sig.CompactRSV(), nil
}

func (ws *walletSigner) Close() {
	ws.keypair = nil
}
