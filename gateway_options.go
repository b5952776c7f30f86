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

import (
	"log/slog"
	"time"

	"github.com/blinklabs-io/actiongate/action"
	"github.com/blinklabs-io/actiongate/chain"
	"github.com/blinklabs-io/actiongate/routing"
)

// GatewayOptionFunc is a type that represents functions that modify the Gateway config
type GatewayOptionFunc func(*Gateway)

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) GatewayOptionFunc {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// WithCluster specifies the Solana cluster. It determines the default chain ID and, when no chain
// client is provided, the RPC endpoint
func WithCluster(cluster Cluster) GatewayOptionFunc {
	return func(g *Gateway) {
		g.cluster = cluster
	}
}

// WithChainID overrides the CAIP-2 chain ID advertised in the X-Blockchain-Ids header
func WithChainID(chainID string) GatewayOptionFunc {
	return func(g *Gateway) {
		g.chainID = chainID
	}
}

// WithChainClient specifies the chain client used to fetch blockhashes. If none is provided, an
// RPC client for the cluster endpoint is created and closed along with the Gateway
func WithChainClient(client chain.Client) GatewayOptionFunc {
	return func(g *Gateway) {
		g.chainClient = client
	}
}

// WithRPCURL specifies the JSON-RPC endpoint for the built-in chain client
func WithRPCURL(rpcURL string) GatewayOptionFunc {
	return func(g *Gateway) {
		g.rpcURL = rpcURL
	}
}

// WithCommitment specifies the commitment level for the built-in chain client
func WithCommitment(commitment string) GatewayOptionFunc {
	return func(g *Gateway) {
		g.commitment = commitment
	}
}

// WithRPCTimeout bounds each blockhash fetch
func WithRPCTimeout(timeout time.Duration) GatewayOptionFunc {
	return func(g *Gateway) {
		g.rpcTimeout = timeout
	}
}

// WithActionVersion specifies the value of the X-Action-Version header
func WithActionVersion(version string) GatewayOptionFunc {
	return func(g *Gateway) {
		g.actionVersion = version
	}
}

// WithAPIPrefix specifies the path under which action endpoints are served
func WithAPIPrefix(prefix string) GatewayOptionFunc {
	return func(g *Gateway) {
		g.apiPrefix = prefix
	}
}

// WithCatalog specifies the actions to serve. The default serves a single SOL transfer
func WithCatalog(catalog *action.Catalog) GatewayOptionFunc {
	return func(g *Gateway) {
		g.catalog = catalog
	}
}

// WithRoutingRules specifies the routing manifest rules. The default maps action URLs to
// themselves and every top-level page to the action of the same name
func WithRoutingRules(rules []routing.Rule) GatewayOptionFunc {
	return func(g *Gateway) {
		g.routingRules = rules
	}
}

// WithRateLimit enables per-client rate limiting of transaction requests. A zero rate disables it
func WithRateLimit(perSecond float64, burst int) GatewayOptionFunc {
	return func(g *Gateway) {
		g.rateLimit = perSecond
		g.rateBurst = burst
	}
}

// WithShutdownTimeout bounds how long ListenAndServe waits for in-flight requests on shutdown
func WithShutdownTimeout(timeout time.Duration) GatewayOptionFunc {
	return func(g *Gateway) {
		g.shutdownTimeout = timeout
	}
}
