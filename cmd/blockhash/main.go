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

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/blinklabs-io/actiongate/chain"
	"github.com/blinklabs-io/actiongate/cmd/common"
)

type blockhashFlags struct {
	*common.GlobalFlags
	timeout time.Duration
}

func main() {
	// Parse commandline
	f := blockhashFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.DurationVar(&f.timeout, "timeout", chain.DefaultTimeout, "RPC timeout")
	f.Flagset.Usage = func() {
		fmt.Fprintf(f.Flagset.Output(), "Usage: %s [options]\n\nPrints the latest blockhash of a Solana cluster.\n\n", os.Args[0])
		f.Flagset.PrintDefaults()
	}
	f.Parse()
	logger := common.NewLogger(f.LogLevel)

	client, err := chain.NewRPCClient(
		chain.WithEndpoint(f.RPCURL),
		chain.WithCommitment(f.Commitment),
		chain.WithTimeout(f.timeout),
		chain.WithLogger(logger),
	)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	defer client.Close()

	start := time.Now()
	blockhash, err := client.LatestBlockhash(context.Background())
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	fmt.Print("Latest blockhash:\n\n")
	fmt.Printf("Endpoint:   %s\n", f.RPCURL)
	fmt.Printf("Commitment: %s\n", f.Commitment)
	fmt.Printf("Blockhash:  %s\n", blockhash)
	fmt.Printf("Elapsed:    %s\n", time.Since(start).Round(time.Millisecond))
}
