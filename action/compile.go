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

package action

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/blinklabs-io/actiongate/chain"
	"github.com/blinklabs-io/actiongate/ledger"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
)

// CompileRequest carries what Compile needs from the incoming POST
type CompileRequest struct {
	Query url.Values
	Body  []byte
}

// Compiler turns validated action parameters into unsigned transactions. It holds no
// per-request state and is safe for concurrent use
type Compiler struct {
	client  chain.Client
	logger  *slog.Logger
	timeout time.Duration
}

// CompilerOptionFunc is a type that represents functions that modify the Compiler
type CompilerOptionFunc func(*Compiler)

// WithLogger specifies the logger to use
func WithLogger(logger *slog.Logger) CompilerOptionFunc {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithTimeout bounds the blockhash fetch for each compiled transaction
func WithTimeout(timeout time.Duration) CompilerOptionFunc {
	return func(c *Compiler) {
		c.timeout = timeout
	}
}

// NewCompiler returns a Compiler that takes blockhashes from client
func NewCompiler(client chain.Client, options ...CompilerOptionFunc) *Compiler {
	c := &Compiler{
		client:  client,
		timeout: chain.DefaultTimeout,
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Compile validates the request and returns the transaction for spec. Every input is checked
// before the chain is queried. Errors are always of type *Error
func (c *Compiler) Compile(
	ctx context.Context,
	spec Spec,
	req CompileRequest,
) (*TransactionResponse, error) {
	switch s := spec.(type) {
	case *Transfer:
		return c.compileTransfer(ctx, s, req)
	default:
		return nil, newError(
			CodeInternal,
			MsgUnsupportedAction,
			fmt.Errorf("cannot compile action of type %T", spec),
		)
	}
}

func (c *Compiler) compileTransfer(
	ctx context.Context,
	spec *Transfer,
	req CompileRequest,
) (*TransactionResponse, error) {
	query := req.Query
	if query == nil {
		query = url.Values{}
	}
	recipientStr := strings.TrimSpace(query.Get("recipient"))
	if recipientStr == "" {
		return nil, newError(CodeInvalidInput, MsgMissingRecipient, nil)
	}
	recipient, err := ledger.NewPublicKeyFromBase58(recipientStr)
	if err != nil {
		return nil, newError(CodeInvalidInput, MsgInvalidRecipient, err)
	}
	payer, err := parseAccount(req.Body)
	if err != nil {
		return nil, err
	}
	lamports, err := ledger.ParseSol(query.Get("amount"))
	if err != nil {
		return nil, newError(CodeInvalidInput, MsgInvalidAmount, err)
	}
	if lamports == 0 {
		return nil, newError(CodeInvalidInput, MsgInvalidAmount, ledger.ErrInvalidAmount)
	}

	blockhash, err := c.latestBlockhash(ctx)
	if err != nil {
		return nil, newError(CodeUnavailable, MsgNetworkUnavailable, err)
	}
	ix, err := system.NewTransferInstruction(
		lamports,
		solana.PublicKey(payer),
		solana.PublicKey(recipient),
	).ValidateAndBuild()
	if err != nil {
		return nil, newError(CodeInternal, MsgBuildFailed, err)
	}
	tx, err := ledger.NewUnsignedTransaction(payer, blockhash, ix)
	if err != nil {
		return nil, newError(CodeInternal, MsgBuildFailed, err)
	}
	txB64, err := ledger.EncodeTransaction(tx)
	if err != nil {
		return nil, newError(CodeInternal, MsgBuildFailed, err)
	}
	c.logger.Debug(
		"compiled transfer",
		"component", "action",
		"action", spec.ID,
		"payer", payer.String(),
		"recipient", recipient.String(),
		"lamports", lamports,
		"blockhash", blockhash.String(),
	)
	return &TransactionResponse{
		Type:        TypeTransaction,
		Transaction: txB64,
		Message: fmt.Sprintf(
			"Send %s %s to %s",
			ledger.FormatSol(lamports),
			ledger.SolSymbol,
			recipient.String(),
		),
	}, nil
}

// parseAccount decodes the POST body and returns the payer. The payer signs the transaction, so
// it must be an ed25519 public key rather than an off-curve address
func parseAccount(body []byte) (ledger.PublicKey, error) {
	var txReq TransactionRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&txReq); err != nil {
		return ledger.PublicKey{}, newError(CodeInvalidInput, MsgInvalidRequestBody, err)
	}
	if dec.More() {
		return ledger.PublicKey{}, newError(
			CodeInvalidInput,
			MsgInvalidRequestBody,
			errors.New("unexpected data after JSON object"),
		)
	}
	account := strings.TrimSpace(txReq.Account)
	if account == "" {
		return ledger.PublicKey{}, newError(CodeInvalidInput, MsgMissingAccount, nil)
	}
	payer, err := ledger.NewPublicKeyFromBase58(account)
	if err != nil {
		return ledger.PublicKey{}, newError(CodeInvalidInput, MsgInvalidAccount, err)
	}
	if !payer.IsOnCurve() {
		return ledger.PublicKey{}, newError(CodeInvalidInput, MsgInvalidAccount, ledger.ErrNotOnCurve)
	}
	return payer, nil
}

func (c *Compiler) latestBlockhash(ctx context.Context) (ledger.Hash, error) {
	if c.client == nil {
		return ledger.Hash{}, fmt.Errorf("%w: no chain client configured", chain.ErrUnavailable)
	}
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ret, err := c.client.LatestBlockhash(ctx)
	if err != nil {
		return ledger.Hash{}, err
	}
	if ret.IsZero() {
		return ledger.Hash{}, fmt.Errorf("%w: zero blockhash", chain.ErrUnavailable)
	}
	return ret, nil
}
