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

package test

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
// Whitespace anywhere in the string is ignored, so long values can be split for readability
func DecodeHexString(hexData string) []byte {
	hexData = strings.Join(strings.Fields(hexData), "")
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// Ed25519PublicKey returns a deterministic ed25519 public key derived from a seed filled with
// the provided byte. The result is always a valid curve point, unlike arbitrary 32-byte values
func Ed25519PublicKey(seedByte byte) [32]byte {
	seed := make([]byte, ed25519.SeedSize)
	for i := range seed {
		seed[i] = seedByte
	}
	priv := ed25519.NewKeyFromSeed(seed)
	var ret [32]byte
	copy(ret[:], priv.Public().(ed25519.PublicKey))
	return ret
}

// Ed25519Address returns the base58 form of Ed25519PublicKey
func Ed25519Address(seedByte byte) string {
	key := Ed25519PublicKey(seedByte)
	return base58.Encode(key[:])
}

// DecodeTransfer decodes a base64 transaction that must hold exactly one System Program transfer
func DecodeTransfer(txB64 string) (*solana.Transaction, *system.Transfer, error) {
	tx, err := solana.TransactionFromBase64(txB64)
	if err != nil {
		return nil, nil, err
	}
	if len(tx.Message.Instructions) != 1 {
		return nil, nil, fmt.Errorf(
			"expected 1 instruction, got %d",
			len(tx.Message.Instructions),
		)
	}
	ci := tx.Message.Instructions[0]
	programID, err := tx.Message.Program(ci.ProgramIDIndex)
	if err != nil {
		return nil, nil, err
	}
	if !programID.Equals(system.ProgramID) {
		return nil, nil, fmt.Errorf("unexpected program %s", programID)
	}
	accounts, err := ci.ResolveInstructionAccounts(&tx.Message)
	if err != nil {
		return nil, nil, err
	}
	inst, err := system.DecodeInstruction(accounts, ci.Data)
	if err != nil {
		return nil, nil, err
	}
	transfer, ok := inst.Impl.(*system.Transfer)
	if !ok {
		return nil, nil, fmt.Errorf("unexpected system instruction %T", inst.Impl)
	}
	return tx, transfer, nil
}
