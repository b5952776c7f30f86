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

// Package action implements the Solana Actions protocol documents and the two operations behind
// an action endpoint: describing an action and compiling its transaction.
//
// # Key Files by Purpose
//
//   - types.go: protocol documents (ActionDescriptor, ActionLink, TransactionResponse, ...)
//   - spec.go: action variants (Spec, Transfer) and the Catalog that indexes them
//   - describe.go: builds an ActionDescriptor from a Spec and request query
//   - compile.go: validates a POST and compiles an unsigned transaction
//   - errors.go: Error, carrying the client-facing message and a Code
//
// # Common Patterns
//
// Describing is forgiving: malformed query values fall back to the action's defaults and
// Describe only fails on programming errors. Compiling is strict: every input is validated, in
// a fixed order, before the chain is queried for a blockhash.
//
//	catalog, err := action.NewCatalog(action.DefaultTransfer())
//	spec, ok := catalog.Lookup("transfer-sol")
//	desc, err := action.Describe(spec, action.DescribeRequest{Origin: origin, ActionPath: path, Query: q})
//	resp, err := action.NewCompiler(client).Compile(ctx, spec, action.CompileRequest{Query: q, Body: body})
package action
