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
	"errors"
	"fmt"
)

// Code classifies an Error. The HTTP layer maps codes to status codes
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidInput
	CodeNotFound
	CodeUnavailable
)

func (c Code) String() string {
	switch c {
	case CodeInternal:
		return "internal"
	case CodeInvalidInput:
		return "invalid input"
	case CodeNotFound:
		return "not found"
	case CodeUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Client-facing error messages
const (
	MsgMissingRecipient     = "missing recipient address"
	MsgInvalidRecipient     = "invalid recipient address format"
	MsgInvalidRequestBody   = "invalid request body"
	MsgMissingAccount       = "missing account"
	MsgInvalidAccount       = "invalid account address"
	MsgInvalidAmount        = "invalid amount"
	MsgNetworkUnavailable   = "network unavailable"
	MsgBuildFailed          = "failed to build transaction"
	MsgUnknownAction        = "unknown action"
	MsgUnsupportedAction    = "unsupported action type"
	MsgInternalServerError  = "internal server error"
	MsgTooManyRequests      = "too many requests"
	MsgMethodNotAllowed     = "method not allowed"
	MsgNotFound             = "not found"
	MsgDescriptorBuildError = "failed to build action descriptor"
)

// Error is returned by Describe and Compile. Message is safe to show to clients. Err holds the
// underlying cause, which is only ever logged
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code Code, msg string, err error) *Error {
	return &Error{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// AsError returns the *Error in err's chain, or wraps err as an internal error
func AsError(err error) *Error {
	var actionErr *Error
	if errors.As(err, &actionErr) {
		return actionErr
	}
	return newError(CodeInternal, MsgInternalServerError, err)
}
