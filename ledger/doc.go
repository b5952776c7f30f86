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

// Package ledger provides the Solana ledger types needed to build unsigned transactions.
//
// # Key Files by Purpose
//
//   - publickey.go: PublicKey parsing (base58) and curve checks
//   - hash.go: Hash type used for recent blockhashes
//   - amount.go: exact decimal <-> lamport conversion
//   - transaction.go: unsigned v0 transactions on top of solana-go
//
// PublicKey and Hash share their layout with the solana-go types and convert to them directly.
//
// # Common Patterns
//
//	ix, err := system.NewTransferInstruction(lamports, solana.PublicKey(payer), solana.PublicKey(recipient)).ValidateAndBuild()
//	tx, err := ledger.NewUnsignedTransaction(payer, blockhash, ix)
//	txB64, err := ledger.EncodeTransaction(tx)
//
// Nothing in this package holds or uses private keys.
package ledger
