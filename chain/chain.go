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

// Package chain provides read-only access to ledger state needed to build transactions.
//
// The only state the gateway needs from the chain is a recent blockhash. Blockhashes are never
// cached: a transaction bound to a stale blockhash expires before the wallet can submit it
package chain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blinklabs-io/actiongate/ledger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnavailable is returned (wrapped) for any failure to obtain data from the chain
var ErrUnavailable = errors.New("chain unavailable")

// Commitment levels accepted by the JSON-RPC API
const (
	CommitmentProcessed = "processed"
	CommitmentConfirmed = "confirmed"
	CommitmentFinalized = "finalized"
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultCommitment = CommitmentConfirmed
)

// Client supplies chain state. Implementations must be safe for concurrent use
type Client interface {
	// LatestBlockhash returns the most recent blockhash at the configured commitment
	LatestBlockhash(ctx context.Context) (ledger.Hash, error)
}

// Config holds chain client settings
type Config struct {
	Endpoint   string
	Commitment string
	Timeout    time.Duration
	Logger     *slog.Logger
	// TracerProvider receives a span per RPC call. Defaults to the global provider
	TracerProvider trace.TracerProvider
}

// ConfigOptionFunc is a type that represents functions that modify the chain client config
type ConfigOptionFunc func(*Config)

// NewConfig returns a Config with defaults applied, modified by the provided options
func NewConfig(options ...ConfigOptionFunc) Config {
	c := Config{
		Commitment: DefaultCommitment,
		Timeout:    DefaultTimeout,
	}
	// Apply provided options functions
	for _, option := range options {
		option(&c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.TracerProvider == nil {
		c.TracerProvider = otel.GetTracerProvider()
	}
	return c
}

// WithEndpoint specifies the JSON-RPC endpoint URL
func WithEndpoint(endpoint string) ConfigOptionFunc {
	return func(c *Config) {
		c.Endpoint = endpoint
	}
}

// WithCommitment specifies the commitment level used for blockhash queries
func WithCommitment(commitment string) ConfigOptionFunc {
	return func(c *Config) {
		c.Commitment = commitment
	}
}

// WithTimeout specifies the upper bound on each RPC call. Calls also end when the caller's
// context does
func WithTimeout(timeout time.Duration) ConfigOptionFunc {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithLogger specifies the logger to use
func WithLogger(logger *slog.Logger) ConfigOptionFunc {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTracerProvider specifies the tracer provider for RPC spans
func WithTracerProvider(tp trace.TracerProvider) ConfigOptionFunc {
	return func(c *Config) {
		c.TracerProvider = tp
	}
}

func (c Config) validate() error {
	if c.Endpoint == "" {
		return errors.New("chain endpoint must be specified")
	}
	switch c.Commitment {
	case CommitmentProcessed, CommitmentConfirmed, CommitmentFinalized:
	default:
		return fmt.Errorf("unknown commitment level: %q", c.Commitment)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}
