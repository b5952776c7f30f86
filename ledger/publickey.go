// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/btcsuite/btcd/btcutil/base58"
)

const (
	PublicKeySize = 32
	// A 32-byte value never needs more than 44 base58 characters
	maxBase58PublicKeyLen = 44
)

// SystemProgramID is the address of the native System program ("11111111111111111111111111111111")
var SystemProgramID = PublicKey{}

type PublicKey [PublicKeySize]byte

// NewPublicKey returns a PublicKey from the raw bytes provided
func NewPublicKey(data []byte) (PublicKey, error) {
	if len(data) != PublicKeySize {
		return PublicKey{}, fmt.Errorf(
			"%w: %w",
			ErrInvalidPublicKey,
			InvalidLengthError{
				Type:     "public key",
				Expected: PublicKeySize,
				Actual:   len(data),
			},
		)
	}
	var ret PublicKey
	copy(ret[:], data)
	return ret, nil
}

// NewPublicKeyFromBase58 parses a base58-encoded public key. Only syntax is checked: the value
// must decode to exactly 32 bytes, but need not be a point on the ed25519 curve
func NewPublicKeyFromBase58(addr string) (PublicKey, error) {
	if addr == "" || len(addr) > maxBase58PublicKeyLen {
		return PublicKey{}, fmt.Errorf(
			"%w: %q is not a base58 public key",
			ErrInvalidPublicKey,
			addr,
		)
	}
	// base58.Decode returns an empty slice for invalid input
	decoded := base58.Decode(addr)
	if len(decoded) == 0 {
		return PublicKey{}, fmt.Errorf(
			"%w: %q is not valid base58",
			ErrInvalidPublicKey,
			addr,
		)
	}
	return NewPublicKey(decoded)
}

// MustPublicKeyFromBase58 is like NewPublicKeyFromBase58, but panics on error. It is intended
// for well-known constant addresses
func MustPublicKeyFromBase58(addr string) PublicKey {
	ret, err := NewPublicKeyFromBase58(addr)
	if err != nil {
		panic(fmt.Sprintf("invalid public key constant %q: %s", addr, err))
	}
	return ret
}

// String returns the base58 encoding of the public key
func (p PublicKey) String() string {
	return base58.Encode(p[:])
}

func (p PublicKey) Bytes() []byte {
	return p[:]
}

func (p PublicKey) Equals(other PublicKey) bool {
	return bytes.Equal(p[:], other[:])
}

// IsOnCurve reports whether the key is a valid compressed ed25519 point. Only on-curve keys have
// a corresponding private key, so only they can sign (and pay for) a transaction
func (p PublicKey) IsOnCurve() bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}

func (p PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *PublicKey) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	ret, err := NewPublicKeyFromBase58(tmp)
	if err != nil {
		return err
	}
	*p = ret
	return nil
}
