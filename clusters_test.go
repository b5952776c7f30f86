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

package actiongate_test

import (
	"testing"

	"github.com/blinklabs-io/actiongate"
)

func TestClusterByName(t *testing.T) {
	testDefs := []struct {
		name     string
		expected actiongate.Cluster
	}{
		{name: "mainnet-beta", expected: actiongate.ClusterMainnet},
		{name: "mainnet", expected: actiongate.ClusterMainnet},
		{name: "devnet", expected: actiongate.ClusterDevnet},
		{name: "testnet", expected: actiongate.ClusterTestnet},
		{name: "localnet", expected: actiongate.ClusterInvalid},
		{name: "", expected: actiongate.ClusterInvalid},
	}
	for _, testDef := range testDefs {
		cluster := actiongate.ClusterByName(testDef.name)
		if cluster.Name != testDef.expected.Name || cluster.ChainID != testDef.expected.ChainID {
			t.Fatalf(
				"did not get expected cluster for %q: got %s, wanted %s",
				testDef.name,
				cluster,
				testDef.expected,
			)
		}
	}
}

func TestClusterByChainID(t *testing.T) {
	cluster := actiongate.ClusterByChainID("solana:EtWTRABZaYq6iMfeYKouRu166VU2xqa1")
	if cluster.Name != "devnet" {
		t.Fatalf("did not get expected cluster: got %s", cluster)
	}
	if actiongate.ClusterByChainID("eip155:1").IsValid() {
		t.Fatalf("unexpectedly found a cluster for a non-Solana chain")
	}
	if actiongate.ClusterInvalid.IsValid() {
		t.Fatalf("invalid cluster reports itself valid")
	}
}
