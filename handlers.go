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
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/blinklabs-io/actiongate/action"
)

// Transaction request bodies are tiny. Anything larger is truncated and fails to parse
const maxRequestBodyBytes = 64 * 1024

func (g *Gateway) handleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		g.methodNotAllowed(w, http.MethodGet)
		return
	}
	g.writeJSON(w, http.StatusOK, g.manifest)
}

func (g *Gateway) handleNotFound(w http.ResponseWriter, r *http.Request) {
	g.writeError(w, r, &action.Error{Code: action.CodeNotFound, Message: action.MsgNotFound})
}

func (g *Gateway) handleAction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	spec, ok := g.catalog.Lookup(id)
	if !ok {
		g.writeError(w, r, &action.Error{Code: action.CodeNotFound, Message: action.MsgUnknownAction})
		return
	}
	switch r.Method {
	case http.MethodGet:
		g.describe(w, r, spec)
	case http.MethodPost:
		g.compile(w, r, spec)
	default:
		g.methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (g *Gateway) describe(w http.ResponseWriter, r *http.Request, spec action.Spec) {
	desc, err := action.Describe(
		spec,
		action.DescribeRequest{
			Origin:     requestOrigin(r),
			ActionPath: g.apiPrefix + "/" + spec.ActionID(),
			Query:      r.URL.Query(),
		},
	)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, http.StatusOK, desc)
}

func (g *Gateway) compile(w http.ResponseWriter, r *http.Request, spec action.Spec) {
	if g.limiter != nil {
		if ok, retryAfter := g.limiter.allow(clientIP(r)); !ok {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			g.logger.Debug("rate limited", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
			g.writeActionError(w, http.StatusTooManyRequests, action.MsgTooManyRequests)
			return
		}
	}
	// A body that cannot be read is reported by the compiler in its turn, after the query
	// parameters are checked
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		g.logger.Debug("failed to read request body", "error", err)
		body = nil
	}
	resp, err := g.compiler.Compile(
		r.Context(),
		spec,
		action.CompileRequest{
			Query: r.URL.Query(),
			Body:  body,
		},
	)
	if err != nil {
		g.writeError(w, r, err)
		return
	}
	g.writeJSON(w, http.StatusOK, resp)
}

func (g *Gateway) methodNotAllowed(w http.ResponseWriter, methods ...string) {
	w.Header().Set("Allow", strings.Join(append(methods, http.MethodOptions), ", "))
	g.writeActionError(w, http.StatusMethodNotAllowed, action.MsgMethodNotAllowed)
}

// requestOrigin returns the scheme and host the client addressed, honoring reverse proxy headers
func requestOrigin(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := strings.ToLower(firstHeaderValue(r.Header.Get("X-Forwarded-Proto"))); proto == "http" ||
		proto == "https" {
		scheme = proto
	}
	host := r.Host
	if fwdHost := firstHeaderValue(r.Header.Get("X-Forwarded-Host")); fwdHost != "" {
		host = fwdHost
	}
	if host == "" {
		host = "localhost"
	}
	return &url.URL{
		Scheme: scheme,
		Host:   host,
	}
}

// firstHeaderValue returns the first entry of a comma-separated header value
func firstHeaderValue(v string) string {
	first, _, _ := strings.Cut(v, ",")
	return strings.TrimSpace(first)
}
