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

package ledger_test

import (
	"errors"
	"testing"

	"github.com/blinklabs-io/actiongate/ledger"
)

func TestParseSol(t *testing.T) {
	testDefs := []struct {
		input    string
		lamports uint64
	}{
		{input: "0", lamports: 0},
		{input: "1", lamports: 1_000_000_000},
		{input: "0.01", lamports: 10_000_000},
		{input: "0.05", lamports: 50_000_000},
		{input: "0.1", lamports: 100_000_000},
		{input: ".5", lamports: 500_000_000},
		{input: "2.500000000", lamports: 2_500_000_000},
		{input: "0.000000001", lamports: 1},
		{input: " 3 ", lamports: 3_000_000_000},
		{input: "18446744073.709551615", lamports: 18_446_744_073_709_551_615},
	}
	for _, testDef := range testDefs {
		lamports, err := ledger.ParseSol(testDef.input)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %s", testDef.input, err)
		}
		if lamports != testDef.lamports {
			t.Fatalf(
				"parsing %q: got %d lamports, wanted %d",
				testDef.input,
				lamports,
				testDef.lamports,
			)
		}
	}
}

func TestParseSolInvalid(t *testing.T) {
	testDefs := []struct {
		input string
		err   error
	}{
		{input: "", err: ledger.ErrInvalidAmount},
		{input: ".", err: ledger.ErrInvalidAmount},
		{input: "1.", err: ledger.ErrInvalidAmount},
		{input: "-1", err: ledger.ErrInvalidAmount},
		{input: "+1", err: ledger.ErrInvalidAmount},
		{input: "1e9", err: ledger.ErrInvalidAmount},
		{input: "1,5", err: ledger.ErrInvalidAmount},
		{input: "0x10", err: ledger.ErrInvalidAmount},
		{input: "NaN", err: ledger.ErrInvalidAmount},
		{input: "1.2.3", err: ledger.ErrInvalidAmount},
		{input: "0.0000000001", err: ledger.ErrAmountPrecision},
		{input: "18446744073.709551616", err: ledger.ErrAmountOverflow},
		{input: "99999999999999999999999", err: ledger.ErrAmountOverflow},
	}
	for _, testDef := range testDefs {
		_, err := ledger.ParseSol(testDef.input)
		if !errors.Is(err, testDef.err) {
			t.Fatalf(
				"parsing %q: got error %v, wanted %v",
				testDef.input,
				err,
				testDef.err,
			)
		}
	}
}

func TestFormatSol(t *testing.T) {
	testDefs := []struct {
		lamports uint64
		expected string
	}{
		{lamports: 0, expected: "0"},
		{lamports: 1, expected: "0.000000001"},
		{lamports: 10_000_000, expected: "0.01"},
		{lamports: 50_000_000, expected: "0.05"},
		{lamports: 100_000_000, expected: "0.1"},
		{lamports: 1_000_000_000, expected: "1"},
		{lamports: 12_345_000_000, expected: "12.345"},
	}
	for _, testDef := range testDefs {
		if got := ledger.FormatSol(testDef.lamports); got != testDef.expected {
			t.Fatalf(
				"formatting %d: got %s, wanted %s",
				testDef.lamports,
				got,
				testDef.expected,
			)
		}
		// Formatting and parsing are inverses
		lamports, err := ledger.ParseSol(testDef.expected)
		if err != nil || lamports != testDef.lamports {
			t.Fatalf("%s did not round-trip: %d, %v", testDef.expected, lamports, err)
		}
	}
}

func TestParseAmountZeroDecimals(t *testing.T) {
	v, err := ledger.ParseAmount("42", 0)
	if err != nil || v != 42 {
		t.Fatalf("unexpected result: %d, %v", v, err)
	}
	if _, err := ledger.ParseAmount("4.2", 0); !errors.Is(err, ledger.ErrAmountPrecision) {
		t.Fatalf("expected precision error, got %v", err)
	}
	if _, err := ledger.ParseAmount("1", ledger.MaxDecimals+1); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount error, got %v", err)
	}
	if got := ledger.FormatAmount(42, 0); got != "42" {
		t.Fatalf("unexpected format: %s", got)
	}
}
