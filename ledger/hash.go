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
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const HashSize = 32

// Hash is a SHA-256 digest, used on the wire for recent blockhashes
type Hash [HashSize]byte

func NewHash(data []byte) (Hash, error) {
	if len(data) != HashSize {
		return Hash{}, fmt.Errorf(
			"%w: %w",
			ErrInvalidHash,
			InvalidLengthError{
				Type:     "hash",
				Expected: HashSize,
				Actual:   len(data),
			},
		)
	}
	var ret Hash
	copy(ret[:], data)
	return ret, nil
}

// NewHashFromBase58 parses a base58-encoded hash, as returned by the JSON-RPC API
func NewHashFromBase58(s string) (Hash, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return Hash{}, fmt.Errorf("%w: %q is not valid base58", ErrInvalidHash, s)
	}
	return NewHash(decoded)
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) Bytes() []byte {
	return h[:]
}

func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}
