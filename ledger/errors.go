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
	"errors"
	"fmt"
)

var (
	ErrInvalidPublicKey    = errors.New("invalid public key")
	ErrInvalidHash         = errors.New("invalid hash")
	ErrNotOnCurve          = errors.New("public key is not on the ed25519 curve")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrAmountPrecision     = errors.New("amount has too many decimal places")
	ErrAmountOverflow      = errors.New("amount overflows 64 bits")
	ErrNoInstructions      = errors.New("transaction has no instructions")
	ErrTransactionTooLarge = errors.New("transaction exceeds maximum packet size")
)

// InvalidLengthError indicates a fixed-size value was decoded with the wrong length
type InvalidLengthError struct {
	Type     string
	Expected int
	Actual   int
}

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf(
		"invalid %s length: expected %d bytes, got %d",
		e.Type,
		e.Expected,
		e.Actual,
	)
}
