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
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blinklabs-io/actiongate/ledger"
	"github.com/gagliardetto/solana-go/rpc"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/blinklabs-io/actiongate/chain"

// RPCClient implements Client over the Solana JSON-RPC API
type RPCClient struct {
	config Config
	rpc    *rpc.Client
	logger *slog.Logger
	tracer trace.Tracer
}

// NewRPCClient returns a client for the configured endpoint. No connection is made until the
// first call
func NewRPCClient(options ...ConfigOptionFunc) (*RPCClient, error) {
	cfg := NewConfig(options...)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &RPCClient{
		config: cfg,
		rpc:    rpc.New(cfg.Endpoint),
		logger: cfg.Logger,
		tracer: cfg.TracerProvider.Tracer(tracerName),
	}, nil
}

// LatestBlockhash calls getLatestBlockhash. Failures of any kind are wrapped in ErrUnavailable
func (c *RPCClient) LatestBlockhash(ctx context.Context) (ledger.Hash, error) {
	ctx, span := c.tracer.Start(
		ctx,
		"chain.LatestBlockhash",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()
	span.SetAttributes(
		attribute.String("solana.commitment", c.config.Commitment),
		attribute.String("rpc.method", "getLatestBlockhash"),
	)
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()
	start := time.Now()
	out, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentType(c.config.Commitment))
	if err == nil && (out == nil || out.Value == nil) {
		err = errors.New("empty getLatestBlockhash result")
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "getLatestBlockhash failed")
		c.logger.Warn(
			"failed to fetch latest blockhash",
			"component", "chain",
			"error", err,
			"elapsed", time.Since(start),
		)
		return ledger.Hash{}, fmt.Errorf("%w: getLatestBlockhash: %w", ErrUnavailable, err)
	}
	ret := ledger.Hash(out.Value.Blockhash)
	if ret.IsZero() {
		err := errors.New("getLatestBlockhash returned a zero blockhash")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return ledger.Hash{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	span.SetAttributes(attribute.Int64("solana.slot", int64(out.Context.Slot))) // #nosec G115
	c.logger.Debug(
		"fetched latest blockhash",
		"component", "chain",
		"blockhash", ret.String(),
		"slot", out.Context.Slot,
		"elapsed", time.Since(start),
	)
	return ret, nil
}

// Close releases the underlying HTTP resources
func (c *RPCClient) Close() error {
	return c.rpc.Close()
}
