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

package ledger

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
)

const (
	SolDecimals    = 9
	SolSymbol      = "SOL"
	LamportsPerSol = 1_000_000_000

	// MaxDecimals is the largest precision for which 10^decimals fits in a uint64
	MaxDecimals = 19
)

var pow10 = func() [MaxDecimals + 1]uint64 {
	var ret [MaxDecimals + 1]uint64
	ret[0] = 1
	for i := 1; i <= MaxDecimals; i++ {
		ret[i] = ret[i-1] * 10
	}
	return ret
}()

// ParseAmount converts a plain decimal string (e.g. "0.05") into base units with the given
// number of decimals. The conversion is exact: values that would need rounding are rejected.
// Signs, exponents and separators are not accepted
func ParseAmount(s string, decimals uint8) (uint64, error) {
	if decimals > MaxDecimals {
		return 0, fmt.Errorf("%w: unsupported precision %d", ErrInvalidAmount, decimals)
	}
	s = strings.TrimSpace(s)
	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if hasDot && fracPart == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !isDigits(intPart) || !isDigits(fracPart) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	// Trailing zeros carry no precision
	fracPart = strings.TrimRight(fracPart, "0")
	if len(fracPart) > int(decimals) {
		return 0, fmt.Errorf("%w: %q allows at most %d", ErrAmountPrecision, s, decimals)
	}
	var whole uint64
	if intPart != "" {
		v, err := strconv.ParseUint(intPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrAmountOverflow, s)
		}
		whole = v
	}
	hi, ret := bits.Mul64(whole, pow10[decimals])
	if hi != 0 {
		return 0, fmt.Errorf("%w: %q", ErrAmountOverflow, s)
	}
	if fracPart != "" {
		frac, err := strconv.ParseUint(fracPart, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		frac *= pow10[int(decimals)-len(fracPart)]
		var carry uint64
		ret, carry = bits.Add64(ret, frac, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: %q", ErrAmountOverflow, s)
		}
	}
	return ret, nil
}

// FormatAmount renders base units as a minimal decimal string, e.g. 50000000 with 9 decimals
// is "0.05"
func FormatAmount(amount uint64, decimals uint8) string {
	if decimals > MaxDecimals {
		panic(fmt.Sprintf("unsupported precision %d", decimals))
	}
	unit := pow10[decimals]
	whole := strconv.FormatUint(amount/unit, 10)
	if decimals == 0 {
		return whole
	}
	frac := strconv.FormatUint(amount%unit, 10)
	frac = strings.Repeat("0", int(decimals)-len(frac)) + frac
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// ParseSol parses a SOL amount into lamports
func ParseSol(s string) (uint64, error) {
	return ParseAmount(s, SolDecimals)
}

// FormatSol renders lamports as a SOL amount
func FormatSol(lamports uint64) string {
	return FormatAmount(lamports, SolDecimals)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
