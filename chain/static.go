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

package chain

import (
	"context"
	"sync/atomic"

	"github.com/blinklabs-io/actiongate/ledger"
)

// StaticClient returns a fixed blockhash, or a fixed error. It is meant for tests and offline
// transaction building
type StaticClient struct {
	Blockhash ledger.Hash
	Err       error
	calls     atomic.Int64
}

// NewStaticClient returns a client that always answers with the given blockhash
func NewStaticClient(blockhash ledger.Hash) *StaticClient {
	return &StaticClient{Blockhash: blockhash}
}

func (c *StaticClient) LatestBlockhash(ctx context.Context) (ledger.Hash, error) {
	c.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return ledger.Hash{}, err
	}
	if c.Err != nil {
		return ledger.Hash{}, c.Err
	}
	return c.Blockhash, nil
}

// Calls returns the number of LatestBlockhash calls made so far
func (c *StaticClient) Calls() int {
	return int(c.calls.Load())
}
