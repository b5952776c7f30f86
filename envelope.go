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
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/blinklabs-io/actiongate/action"
)

// Protocol envelope headers
const (
	HeaderBlockchainIDs = "X-Blockchain-Ids"
	HeaderActionVersion = "X-Action-Version"

	corsAllowMethods  = "GET,POST,OPTIONS"
	corsAllowHeaders  = "Content-Type, Authorization, Content-Encoding, Accept-Encoding, X-Accept-Action-Version, X-Accept-Blockchain-Ids"
	corsExposeHeaders = HeaderActionVersion + ", " + HeaderBlockchainIDs
	contentTypeJSON   = "application/json"
)

// setEnvelopeHeaders sets the headers every response carries
func (g *Gateway) setEnvelopeHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
	h.Set("Content-Type", contentTypeJSON)
	h.Set(HeaderBlockchainIDs, g.chainID)
	h.Set(HeaderActionVersion, g.actionVersion)
}

// envelope attaches the protocol headers before any handler runs and answers OPTIONS on every
// path with those headers alone
func (g *Gateway) envelope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.setEnvelopeHeaders(w.Header())
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// responseRecorder remembers the status written through it
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(data)
}

func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// recoverPanics turns a handler panic into a 500 response and logs each request
func (g *Gateway) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w}
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				g.logger.Error(
					"panic in request handler",
					"method", r.Method,
					"path", r.URL.Path,
					"error", fmt.Sprint(p),
					"stack", string(debug.Stack()),
				)
				if rec.status == 0 {
					g.setEnvelopeHeaders(w.Header())
					g.writeActionError(rec, http.StatusInternalServerError, action.MsgInternalServerError)
				}
			}
			g.logger.Debug(
				"handled request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"elapsed", time.Since(start),
			)
		}()
		next.ServeHTTP(rec, r)
	})
}
