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

package action_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"testing"
	"time"

	"github.com/blinklabs-io/actiongate/action"
	"github.com/blinklabs-io/actiongate/chain"
	"github.com/blinklabs-io/actiongate/internal/test"
	"github.com/blinklabs-io/actiongate/ledger"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBlockhash() ledger.Hash {
	var ret ledger.Hash
	for i := range ret {
		ret[i] = byte(0x40 + i)
	}
	return ret
}

func newTestCompiler(client chain.Client) *action.Compiler {
	return action.NewCompiler(
		client,
		action.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		action.WithTimeout(time.Second),
	)
}

func accountBody(account string) []byte {
	return []byte(`{"account":"` + account + `"}`)
}

func TestCompileTransferExample(t *testing.T) {
	client := chain.NewStaticClient(testBlockhash())
	compiler := newTestCompiler(client)
	payerAddr := test.Ed25519Address(7)

	resp, err := compiler.Compile(
		context.Background(),
		action.DefaultTransfer(),
		action.CompileRequest{
			Query: url.Values{"amount": {"0.05"}, "recipient": {nullAddress}},
			Body:  accountBody(payerAddr),
		},
	)
	require.NoError(t, err)
	assert.Equal(t, action.TypeTransaction, resp.Type)
	assert.Equal(t, 1, client.Calls())

	tx, transfer, err := test.DecodeTransfer(resp.Transaction)
	require.NoError(t, err)
	assert.False(t, ledger.IsSigned(tx))
	require.Len(t, tx.Signatures, 1)
	assert.Equal(t, solana.MessageVersionV0, tx.Message.GetVersion())
	assert.Equal(t, payerAddr, tx.Message.AccountKeys[0].String())
	assert.Equal(t, solana.Hash(testBlockhash()), tx.Message.RecentBlockhash)
	assert.Equal(t, payerAddr, transfer.GetFundingAccount().PublicKey.String())
	assert.Equal(t, nullAddress, transfer.GetRecipientAccount().PublicKey.String())
	require.NotNil(t, transfer.Lamports)
	assert.Equal(t, uint64(50_000_000), *transfer.Lamports)
}

func TestCompileIdempotent(t *testing.T) {
	compiler := newTestCompiler(chain.NewStaticClient(testBlockhash()))
	req := action.CompileRequest{
		Query: url.Values{"amount": {"1.5"}, "recipient": {test.Ed25519Address(2)}},
		Body:  accountBody(test.Ed25519Address(1)),
	}
	first, err := compiler.Compile(context.Background(), action.DefaultTransfer(), req)
	require.NoError(t, err)
	second, err := compiler.Compile(context.Background(), action.DefaultTransfer(), req)
	require.NoError(t, err)
	assert.Equal(t, first.Transaction, second.Transaction)
}

func TestCompileValidation(t *testing.T) {
	payerAddr := test.Ed25519Address(3)
	recipientAddr := test.Ed25519Address(4)
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte("vault")}, solana.SystemProgramID)
	require.NoError(t, err)

	testDefs := []struct {
		name    string
		query   url.Values
		body    string
		message string
	}{
		{
			name:    "missing recipient",
			query:   url.Values{"amount": {"1"}},
			body:    `{"account":"` + payerAddr + `"}`,
			message: action.MsgMissingRecipient,
		},
		{
			name:    "blank recipient wins over bad body",
			query:   url.Values{"recipient": {"  "}},
			body:    `garbage`,
			message: action.MsgMissingRecipient,
		},
		{
			name:    "recipient not base58",
			query:   url.Values{"amount": {"1"}, "recipient": {"0OIl"}},
			body:    `{"account":"` + payerAddr + `"}`,
			message: action.MsgInvalidRecipient,
		},
		{
			name:    "recipient wrong length",
			query:   url.Values{"amount": {"1"}, "recipient": {"1111"}},
			body:    `{"account":"` + payerAddr + `"}`,
			message: action.MsgInvalidRecipient,
		},
		{
			name:    "body not json",
			query:   url.Values{"amount": {"1"}, "recipient": {recipientAddr}},
			body:    `account=` + payerAddr,
			message: action.MsgInvalidRequestBody,
		},
		{
			name:    "empty body",
			query:   url.Values{"amount": {"1"}, "recipient": {recipientAddr}},
			body:    ``,
			message: action.MsgInvalidRequestBody,
		},
		{
			name:    "trailing data",
			query:   url.Values{"amount": {"1"}, "recipient": {recipientAddr}},
			body:    `{"account":"` + payerAddr + `"} {}`,
			message: action.MsgInvalidRequestBody,
		},
		{
			name:    "account wrong type",
			query:   url.Values{"amount": {"1"}, "recipient": {recipientAddr}},
			body:    `{"account":42}`,
			message: action.MsgInvalidRequestBody,
		},
		{
			name:    "missing account",
			query:   url.Values{"amount": {"1"}, "recipient": {recipientAddr}},
			body:    `{}`,
			message: action.MsgMissingAccount,
		},
		{
			name:    "invalid account",
			query:   url.Values{"amount": {"1"}, "recipient": {recipientAddr}},
			body:    `{"account":"not-a-key"}`,
			message: action.MsgInvalidAccount,
		},
		{
			name:    "off-curve account",
			query:   url.Values{"amount": {"1"}, "recipient": {recipientAddr}},
			body:    `{"account":"` + pda.String() + `"}`,
			message: action.MsgInvalidAccount,
		},
		{
			name:    "missing amount",
			query:   url.Values{"recipient": {recipientAddr}},
			body:    `{"account":"` + payerAddr + `"}`,
			message: action.MsgInvalidAmount,
		},
		{
			name:    "zero amount",
			query:   url.Values{"amount": {"0"}, "recipient": {recipientAddr}},
			body:    `{"account":"` + payerAddr + `"}`,
			message: action.MsgInvalidAmount,
		},
		{
			name:    "negative amount",
			query:   url.Values{"amount": {"-1"}, "recipient": {recipientAddr}},
			body:    `{"account":"` + payerAddr + `"}`,
			message: action.MsgInvalidAmount,
		},
		{
			name:    "too precise amount",
			query:   url.Values{"amount": {"0.0000000001"}, "recipient": {recipientAddr}},
			body:    `{"account":"` + payerAddr + `"}`,
			message: action.MsgInvalidAmount,
		},
		{
			name:    "placeholder amount",
			query:   url.Values{"amount": {"{amount}"}, "recipient": {recipientAddr}},
			body:    `{"account":"` + payerAddr + `"}`,
			message: action.MsgInvalidAmount,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			client := chain.NewStaticClient(testBlockhash())
			compiler := newTestCompiler(client)
			_, err := compiler.Compile(
				context.Background(),
				action.DefaultTransfer(),
				action.CompileRequest{Query: testDef.query, Body: []byte(testDef.body)},
			)
			var actionErr *action.Error
			require.ErrorAs(t, err, &actionErr)
			assert.Equal(t, action.CodeInvalidInput, actionErr.Code)
			assert.Equal(t, testDef.message, actionErr.Message)
			assert.Equal(t, 0, client.Calls(), "chain client must not be called on invalid input")
		})
	}
}

func TestCompileChainUnavailable(t *testing.T) {
	client := chain.NewStaticClient(ledger.Hash{})
	client.Err = errors.Join(chain.ErrUnavailable, errors.New("connection refused to 10.0.0.5:8899"))
	compiler := newTestCompiler(client)
	_, err := compiler.Compile(
		context.Background(),
		action.DefaultTransfer(),
		action.CompileRequest{
			Query: url.Values{"amount": {"1"}, "recipient": {nullAddress}},
			Body:  accountBody(test.Ed25519Address(1)),
		},
	)
	var actionErr *action.Error
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, action.CodeUnavailable, actionErr.Code)
	assert.Equal(t, action.MsgNetworkUnavailable, actionErr.Message)
	assert.NotContains(t, actionErr.Message, "10.0.0.5")
	assert.ErrorIs(t, err, chain.ErrUnavailable)
	assert.Equal(t, 1, client.Calls())

	// A zero blockhash is never bound into a transaction
	client.Err = nil
	_, err = compiler.Compile(
		context.Background(),
		action.DefaultTransfer(),
		action.CompileRequest{
			Query: url.Values{"amount": {"1"}, "recipient": {nullAddress}},
			Body:  accountBody(test.Ed25519Address(1)),
		},
	)
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, action.CodeUnavailable, actionErr.Code)

	// No client at all
	_, err = newTestCompiler(nil).Compile(
		context.Background(),
		action.DefaultTransfer(),
		action.CompileRequest{
			Query: url.Values{"amount": {"1"}, "recipient": {nullAddress}},
			Body:  accountBody(test.Ed25519Address(1)),
		},
	)
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, action.CodeUnavailable, actionErr.Code)
}

type slowClient struct{}

func (slowClient) LatestBlockhash(ctx context.Context) (ledger.Hash, error) {
	<-ctx.Done()
	return ledger.Hash{}, ctx.Err()
}

func TestCompileBlockhashTimeout(t *testing.T) {
	compiler := action.NewCompiler(
		slowClient{},
		action.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		action.WithTimeout(20*time.Millisecond),
	)
	_, err := compiler.Compile(
		context.Background(),
		action.DefaultTransfer(),
		action.CompileRequest{
			Query: url.Values{"amount": {"1"}, "recipient": {nullAddress}},
			Body:  accountBody(test.Ed25519Address(1)),
		},
	)
	var actionErr *action.Error
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, action.CodeUnavailable, actionErr.Code)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCompilePayerIsRecipient(t *testing.T) {
	addr := test.Ed25519Address(9)
	resp, err := newTestCompiler(chain.NewStaticClient(testBlockhash())).Compile(
		context.Background(),
		action.DefaultTransfer(),
		action.CompileRequest{
			Query: url.Values{"amount": {"0.01"}, "recipient": {addr}},
			Body:  accountBody(addr),
		},
	)
	require.NoError(t, err)
	tx, err := ledger.DecodeTransaction(resp.Transaction)
	require.NoError(t, err)
	// Payer and system program only
	assert.Len(t, tx.Message.AccountKeys, 2)
}

func TestCompileUnknownVariant(t *testing.T) {
	// Spec is sealed, so a nil interface is the only foreign value
	_, err := newTestCompiler(chain.NewStaticClient(testBlockhash())).Compile(
		context.Background(),
		nil,
		action.CompileRequest{},
	)
	var actionErr *action.Error
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, action.CodeInternal, actionErr.Code)
	assert.Equal(t, action.MsgUnsupportedAction, actionErr.Message)
}
