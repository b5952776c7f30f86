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

package common

import (
	"flag"
	"fmt"
	"os"

	"github.com/blinklabs-io/actiongate"
	"github.com/blinklabs-io/actiongate/chain"
)

type GlobalFlags struct {
	Flagset    *flag.FlagSet
	Cluster    string
	RPCURL     string
	Commitment string
	LogLevel   string
	// Resolved by Parse
	ClusterInfo actiongate.Cluster
}

func NewGlobalFlags() *GlobalFlags {
	f := &GlobalFlags{
		Flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.Flagset.StringVar(
		&f.Cluster,
		"cluster",
		actiongate.ClusterDevnet.Name,
		"Solana cluster: mainnet-beta, devnet or testnet",
	)
	f.Flagset.StringVar(
		&f.RPCURL,
		"rpc-url",
		"",
		"JSON-RPC endpoint to use. this overrides the cluster's public endpoint",
	)
	f.Flagset.StringVar(
		&f.Commitment,
		"commitment",
		chain.DefaultCommitment,
		"commitment level for blockhash queries",
	)
	f.Flagset.StringVar(
		&f.LogLevel,
		"log-level",
		"info",
		"log level: debug, info, warn or error",
	)
	return f
}

func (f *GlobalFlags) Parse() {
	if err := f.Flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	f.ClusterInfo = actiongate.ClusterByName(f.Cluster)
	if !f.ClusterInfo.IsValid() && f.RPCURL == "" {
		fmt.Printf("Invalid cluster specified: %s\n", f.Cluster)
		os.Exit(1)
	}
	if f.RPCURL == "" {
		f.RPCURL = f.ClusterInfo.RPCURL
	}
}
