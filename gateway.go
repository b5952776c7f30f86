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

// Package actiongate implements an HTTP gateway for Solana Actions ("Blinks").
//
// The gateway serves three documents: the routing manifest (actions.json), an action
// descriptor for each action (GET), and an unsigned transaction for each action (POST). Every
// response, including errors and CORS preflight, carries the same protocol envelope headers.
//
// # Key Files by Purpose
//
//   - gateway.go: Gateway lifecycle (New, ServeHTTP, ListenAndServe, Close)
//   - gateway_options.go: functional options for New
//   - envelope.go: protocol headers, OPTIONS handling, panic recovery
//   - handlers.go: manifest and action endpoints
//   - errors.go: mapping of action errors to HTTP responses
//   - ratelimit.go: per-client rate limiting of transaction requests
//   - clusters.go: known Solana clusters and their CAIP-2 chain IDs
//
// # Common Patterns
//
//	gw, err := actiongate.New(
//		actiongate.WithCluster(actiongate.ClusterDevnet),
//		actiongate.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer gw.Close()
//	return gw.ListenAndServe(ctx, ":8080")
package actiongate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/blinklabs-io/actiongate/action"
	"github.com/blinklabs-io/actiongate/chain"
	"github.com/blinklabs-io/actiongate/routing"
)

const (
	DefaultActionVersion   = "2.1.3"
	DefaultAPIPrefix       = "/api/actions"
	DefaultShutdownTimeout = 10 * time.Second

	// The routing manifest is served identically at each of these paths
	ManifestPath          = "/actions.json"
	WellKnownManifestPath = "/.well-known/routing-manifest"
	RoutingManifestPath   = "/well-known-routing"

	readHeaderTimeout = 10 * time.Second
)

var (
	apiPrefixRegexp = regexp.MustCompile(`^(/[A-Za-z0-9._~-]+)+$`)
	manifestPaths   = []string{ManifestPath, WellKnownManifestPath, RoutingManifestPath}
)

// Gateway serves the action endpoints. It is an http.Handler
type Gateway struct {
	logger          *slog.Logger
	cluster         Cluster
	chainID         string
	chainClient     chain.Client
	ownedClient     *chain.RPCClient
	rpcURL          string
	commitment      string
	rpcTimeout      time.Duration
	actionVersion   string
	apiPrefix       string
	catalog         *action.Catalog
	routingRules    []routing.Rule
	manifest        *routing.Manifest
	compiler        *action.Compiler
	rateLimit       float64
	rateBurst       int
	limiter         *rateLimiter
	shutdownTimeout time.Duration
	handler         http.Handler
	onceClose       sync.Once
}

// New returns a Gateway configured by the provided options. It fails when the configuration is
// inconsistent, including a routing manifest under which action URLs do not map to themselves
func New(options ...GatewayOptionFunc) (*Gateway, error) {
	g := &Gateway{
		cluster:         ClusterDevnet,
		commitment:      chain.DefaultCommitment,
		rpcTimeout:      chain.DefaultTimeout,
		actionVersion:   DefaultActionVersion,
		apiPrefix:       DefaultAPIPrefix,
		shutdownTimeout: DefaultShutdownTimeout,
	}
	// Apply provided options functions
	for _, option := range options {
		option(g)
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	g.logger = g.logger.With("component", "gateway")
	if err := g.setup(); err != nil {
		_ = g.Close()
		return nil, err
	}
	return g, nil
}

func (g *Gateway) setup() error {
	if g.chainID == "" {
		g.chainID = g.cluster.ChainID
	}
	if g.chainID == "" {
		return errors.New("a chain ID or known cluster must be specified")
	}
	if g.actionVersion == "" {
		return errors.New("action version must not be empty")
	}
	if g.rpcTimeout <= 0 {
		return fmt.Errorf("invalid RPC timeout: %s", g.rpcTimeout)
	}
	g.apiPrefix = strings.TrimSuffix(g.apiPrefix, "/")
	if !apiPrefixRegexp.MatchString(g.apiPrefix) {
		return fmt.Errorf("invalid API prefix: %q", g.apiPrefix)
	}
	for _, reserved := range manifestPaths {
		if g.apiPrefix == reserved || strings.HasPrefix(reserved, g.apiPrefix+"/") {
			return fmt.Errorf("API prefix %q conflicts with %s", g.apiPrefix, reserved)
		}
	}
	if g.catalog == nil {
		catalog, err := action.NewCatalog(action.DefaultTransfer())
		if err != nil {
			return err
		}
		g.catalog = catalog
	}
	rules := g.routingRules
	if rules == nil {
		rules = routing.DefaultRules(g.apiPrefix)
	}
	manifest, err := routing.NewManifest(g.apiPrefix, rules, g.catalog.IDs()...)
	if err != nil {
		return fmt.Errorf("routing manifest: %w", err)
	}
	g.manifest = manifest
	if g.chainClient == nil {
		rpcURL := g.rpcURL
		if rpcURL == "" {
			rpcURL = g.cluster.RPCURL
		}
		client, err := chain.NewRPCClient(
			chain.WithEndpoint(rpcURL),
			chain.WithCommitment(g.commitment),
			chain.WithTimeout(g.rpcTimeout),
			chain.WithLogger(g.logger),
		)
		if err != nil {
			return fmt.Errorf("chain client: %w", err)
		}
		g.ownedClient = client
		g.chainClient = client
	}
	g.compiler = action.NewCompiler(
		g.chainClient,
		action.WithLogger(g.logger),
		action.WithTimeout(g.rpcTimeout),
	)
	if g.rateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %v", g.rateLimit)
	}
	if g.rateLimit > 0 {
		if g.rateBurst <= 0 {
			return fmt.Errorf("invalid rate limit burst: %d", g.rateBurst)
		}
		g.limiter = newRateLimiter(g.rateLimit, g.rateBurst)
	}
	g.handler = g.recoverPanics(g.envelope(g.routes()))
	return nil
}

func (g *Gateway) routes() http.Handler {
	mux := http.NewServeMux()
	for _, p := range manifestPaths {
		mux.HandleFunc(p, g.handleManifest)
	}
	mux.HandleFunc(g.apiPrefix+"/{id}", g.handleAction)
	mux.HandleFunc("/", g.handleNotFound)
	return mux
}

// ServeHTTP implements http.Handler
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.handler.ServeHTTP(w, r)
}

// Manifest returns the routing manifest served by the gateway
func (g *Gateway) Manifest() *routing.Manifest {
	return g.manifest
}

// ChainID returns the CAIP-2 chain ID advertised by the gateway
func (g *Gateway) ChainID() string {
	return g.chainID
}

// ListenAndServe serves on addr until ctx is done, then shuts down gracefully
func (g *Gateway) ListenAndServe(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return g.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully. The listener is
// closed on return
func (g *Gateway) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           g,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          slog.NewLogLogger(g.logger.Handler(), slog.LevelWarn),
		BaseContext: func(net.Listener) context.Context {
			return context.WithoutCancel(ctx)
		},
	}
	g.logger.Info(
		"serving action gateway",
		"address", listener.Addr().String(),
		"chain_id", g.chainID,
		"api_prefix", g.apiPrefix,
		"actions", g.catalog.IDs(),
	)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(listener)
	}()
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), g.shutdownTimeout)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		<-serveErr
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		g.logger.Info("action gateway stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops background work and releases the built-in chain client, if any. It does not stop
// a running ListenAndServe; cancel its context instead
func (g *Gateway) Close() error {
	var err error
	g.onceClose.Do(func() {
		if g.limiter != nil {
			g.limiter.Close()
		}
		if g.ownedClient != nil {
			err = g.ownedClient.Close()
		}
	})
	return err
}
