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
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blinklabs-io/actiongate"
	"github.com/blinklabs-io/actiongate/cmd/common"
	"github.com/blinklabs-io/actiongate/config"
	"github.com/blinklabs-io/actiongate/internal/telemetry"
)

const (
	serviceName         = "actiongate"
	tracingFlushTimeout = 5 * time.Second
)

type gatewayFlags struct {
	*common.GlobalFlags
	listen      string
	catalogFile string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}

	// Parse commandline. Flags override the environment
	f := gatewayFlags{
		GlobalFlags: common.NewGlobalFlags(),
	}
	f.Flagset.StringVar(&f.listen, "listen", cfg.ListenAddress, "address to listen on")
	f.Flagset.StringVar(&f.catalogFile, "catalog", cfg.CatalogFile, "YAML action catalog file")
	f.Flagset.Usage = func() {
		fmt.Fprintf(
			f.Flagset.Output(),
			"Usage: %s [options]\n\nServes Solana Actions. Options may also be set with %s* environment variables.\n\n",
			os.Args[0],
			config.EnvPrefix,
		)
		f.Flagset.PrintDefaults()
	}
	f.Cluster = cfg.Cluster
	f.RPCURL = cfg.RPCURL
	f.Commitment = cfg.Commitment
	f.LogLevel = cfg.LogLevel
	f.Parse()
	cfg.CatalogFile = f.catalogFile

	logger := common.NewLogger(f.LogLevel)

	catalog, err := cfg.LoadCatalog()
	if err != nil {
		logger.Error("failed to load action catalog", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, f, catalog, logger); err != nil {
		logger.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, f gatewayFlags, catalog *config.Catalog, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(
		ctx,
		telemetry.Config{
			ServiceName:    serviceName,
			ServiceVersion: cfg.ActionVersion,
			Endpoint:       cfg.OTELEndpoint,
			SampleRatio:    cfg.OTELSampleRatio,
		},
	)
	if err != nil {
		return fmt.Errorf("set up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), tracingFlushTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("failed to flush traces", "error", err)
		}
	}()

	gw, err := actiongate.New(
		actiongate.WithLogger(logger),
		actiongate.WithCluster(f.ClusterInfo),
		actiongate.WithChainID(cfg.ChainID),
		actiongate.WithRPCURL(f.RPCURL),
		actiongate.WithCommitment(f.Commitment),
		actiongate.WithRPCTimeout(cfg.RPCTimeout),
		actiongate.WithActionVersion(cfg.ActionVersion),
		actiongate.WithAPIPrefix(cfg.APIPrefix),
		actiongate.WithCatalog(catalog.Actions),
		actiongate.WithRoutingRules(catalog.Rules),
		actiongate.WithRateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	if err != nil {
		return fmt.Errorf("configure gateway: %w", err)
	}
	defer func() {
		if err := gw.Close(); err != nil {
			logger.Warn("failed to close gateway", "error", err)
		}
	}()
	return gw.ListenAndServe(ctx, f.listen)
}
