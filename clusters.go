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

package actiongate

// Cluster definitions
var (
	ClusterMainnet = Cluster{
		Name:    "mainnet-beta",
		Aliases: []string{"mainnet"},
		ChainID: "solana:5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp",
		RPCURL:  "https://api.mainnet-beta.solana.com",
	}
	ClusterDevnet = Cluster{
		Name:    "devnet",
		ChainID: "solana:EtWTRABZaYq6iMfeYKouRu166VU2xqa1",
		RPCURL:  "https://api.devnet.solana.com",
	}
	ClusterTestnet = Cluster{
		Name:    "testnet",
		ChainID: "solana:4uhcVJyU9pJkvQyS88uRDiswHXSCkY3z",
		RPCURL:  "https://api.testnet.solana.com",
	}

	ClusterInvalid = Cluster{
		Name: "invalid",
	} // ClusterInvalid is used as a return value for lookup functions when a cluster isn't found
)

// List of valid clusters for use in lookup functions
var clusters = []Cluster{
	ClusterMainnet,
	ClusterDevnet,
	ClusterTestnet,
}

// ClusterByName returns a predefined cluster by name or alias
func ClusterByName(name string) Cluster {
	for _, cluster := range clusters {
		if cluster.Name == name {
			return cluster
		}
		for _, alias := range cluster.Aliases {
			if alias == name {
				return cluster
			}
		}
	}
	return ClusterInvalid
}

// ClusterByChainID returns a predefined cluster by CAIP-2 chain ID
func ClusterByChainID(chainID string) Cluster {
	for _, cluster := range clusters {
		if cluster.ChainID == chainID {
			return cluster
		}
	}
	return ClusterInvalid
}

// Cluster represents a Solana cluster
type Cluster struct {
	Name    string
	Aliases []string
	// ChainID is the CAIP-2 identifier sent in the X-Blockchain-Ids header
	ChainID string
	// RPCURL is the public JSON-RPC endpoint
	RPCURL string
}

func (c Cluster) String() string {
	return c.Name
}

// IsValid reports whether c is a known cluster
func (c Cluster) IsValid() bool {
	return c.ChainID != ""
}
