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
	"encoding/json"
	"net/http"

	"github.com/blinklabs-io/actiongate/action"
)

var codeToHTTP = map[action.Code]int{
	action.CodeInvalidInput: http.StatusBadRequest,
	action.CodeNotFound:     http.StatusNotFound,
	action.CodeUnavailable:  http.StatusServiceUnavailable,
	action.CodeInternal:     http.StatusInternalServerError,
}

// StatusForCode returns the HTTP status for an action error code
func StatusForCode(code action.Code) int {
	if status, ok := codeToHTTP[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// writeError reports err to the client. Only the client-facing message is sent; the cause is
// logged at a level matching its code
func (g *Gateway) writeError(w http.ResponseWriter, r *http.Request, err error) {
	actionErr := action.AsError(err)
	status := StatusForCode(actionErr.Code)
	logArgs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"code", actionErr.Code.String(),
		"error", actionErr,
	}
	switch actionErr.Code {
	case action.CodeInvalidInput, action.CodeNotFound:
		g.logger.Debug("rejected request", logArgs...)
	case action.CodeUnavailable:
		g.logger.Warn("upstream failure", logArgs...)
	default:
		g.logger.Error("internal error", logArgs...)
	}
	g.writeActionError(w, status, actionErr.Message)
}

func (g *Gateway) writeActionError(w http.ResponseWriter, status int, msg string) {
	g.writeJSON(w, status, action.ActionError{Message: msg})
}

// writeJSON encodes v before writing any headers so an encoding failure can still be reported
func (g *Gateway) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		g.logger.Error("failed to encode response", "error", err)
		status = http.StatusInternalServerError
		data = []byte(`{"message":"` + action.MsgInternalServerError + `"}`)
	}
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		g.logger.Debug("failed to write response", "error", err)
	}
}
