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
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MaxTransactionSize is the largest serialized transaction a validator accepts
const MaxTransactionSize = 1232

// NewUnsignedTransaction compiles instructions into a v0 transaction paid by payer. Every
// required signer gets an empty signature slot for the wallet to fill
func NewUnsignedTransaction(
	payer PublicKey,
	blockhash Hash,
	instructions ...solana.Instruction,
) (*solana.Transaction, error) {
	if len(instructions) == 0 {
		return nil, ErrNoInstructions
	}
	tx, err := solana.NewTransaction(
		instructions,
		solana.Hash(blockhash),
		solana.TransactionPayer(solana.PublicKey(payer)),
	)
	if err != nil {
		return nil, fmt.Errorf("compile transaction: %w", err)
	}
	tx.Message.SetVersion(solana.MessageVersionV0)
	tx.Signatures = make([]solana.Signature, tx.Message.Header.NumRequiredSignatures)
	return tx, nil
}

// EncodeTransaction returns the base64 wire form of tx
func EncodeTransaction(tx *solana.Transaction) (string, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("encode transaction: %w", err)
	}
	if len(data) > MaxTransactionSize {
		return "", fmt.Errorf(
			"%w: %d bytes, limit %d",
			ErrTransactionTooLarge,
			len(data),
			MaxTransactionSize,
		)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeTransaction parses the base64 wire form of a transaction
func DecodeTransaction(txB64 string) (*solana.Transaction, error) {
	tx, err := solana.TransactionFromBase64(txB64)
	if err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	return tx, nil
}

// IsSigned reports whether any signature slot of tx holds a signature
func IsSigned(tx *solana.Transaction) bool {
	for _, sig := range tx.Signatures {
		if !sig.IsZero() {
			return true
		}
	}
	return false
}
