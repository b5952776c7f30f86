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
	"fmt"
	"math/bits"
	"net/url"
	"slices"
	"strings"

	"github.com/blinklabs-io/actiongate/ledger"
)

// DescribeRequest carries what Describe needs from the incoming GET
type DescribeRequest struct {
	// Origin is the scheme and host the request was addressed to
	Origin *url.URL
	// ActionPath is the path of the action endpoint, used as the base of link hrefs
	ActionPath string
	Query      url.Values
}

// Describe builds the descriptor for spec. Query values override the spec's presentation
// defaults; malformed values are ignored rather than reported
func Describe(spec Spec, req DescribeRequest) (*ActionDescriptor, error) {
	if req.Origin == nil || req.Origin.Scheme == "" || req.Origin.Host == "" {
		return nil, newError(
			CodeInternal,
			MsgDescriptorBuildError,
			fmt.Errorf("request origin is not absolute: %v", req.Origin),
		)
	}
	var desc *ActionDescriptor
	switch s := spec.(type) {
	case *Transfer:
		desc = describeTransfer(s, req)
	default:
		return nil, newError(
			CodeInternal,
			MsgUnsupportedAction,
			fmt.Errorf("cannot describe action of type %T", spec),
		)
	}
	if err := desc.Validate(); err != nil {
		return nil, newError(CodeInternal, MsgDescriptorBuildError, err)
	}
	return desc, nil
}

func describeTransfer(spec *Transfer, req DescribeRequest) *ActionDescriptor {
	query := req.Query
	if query == nil {
		query = url.Values{}
	}
	recipient := strings.TrimSpace(query.Get("recipient"))
	if recipient == "" {
		recipient = spec.Recipient
	}
	base := spec.baseLamports()
	amounts, _ := presetAmounts(base, spec.Presets)
	if override, err := ledger.ParseSol(query.Get("baseAmount")); err == nil && override > 0 {
		if tmp, ok := presetAmounts(override, spec.Presets); ok {
			amounts = tmp
		}
	}
	label := spec.Label
	if label == "" {
		label = DefaultTransferLabel
	}
	// Without a known recipient every link declares a recipient parameter
	recipientValue := url.QueryEscape(recipient)
	var recipientParams []ActionParameter
	if recipient == "" {
		recipientValue = "{" + recipientParameterName + "}"
		recipientParams = []ActionParameter{
			{
				Name:     recipientParameterName,
				Label:    recipientParameterLabel,
				Type:     ParameterTypeText,
				Required: true,
			},
		}
	}
	links := make([]ActionLink, 0, len(amounts)+1)
	for _, lamports := range amounts {
		amount := ledger.FormatSol(lamports)
		links = append(links, ActionLink{
			Type:       TypeTransaction,
			Label:      amount + " " + ledger.SolSymbol,
			Href:       transferHref(req.ActionPath, amount, recipientValue),
			Parameters: slices.Clone(recipientParams),
		})
	}
	customParams := []ActionParameter{
		{
			Name:     amountParameterName,
			Label:    amountParameterLabel,
			Type:     ParameterTypeNumber,
			Required: true,
		},
	}
	links = append(links, ActionLink{
		Type:       TypeTransaction,
		Label:      label,
		Href:       transferHref(req.ActionPath, "{"+amountParameterName+"}", recipientValue),
		Parameters: append(customParams, recipientParams...),
	})
	return &ActionDescriptor{
		Type:        TypeAction,
		Icon:        ResolveIcon(req.Origin, query.Get("imageUrl"), spec.Icon),
		Title:       queryOrDefault(query, "title", spec.Title),
		Description: queryOrDefault(query, "description", spec.Description),
		Label:       label,
		Links: ActionLinks{
			Actions: links,
		},
	}
}

// transferHref builds a link to the action endpoint. Both values are inserted verbatim so that
// placeholders survive; callers escape concrete values
func transferHref(actionPath string, amount string, recipient string) string {
	var sb strings.Builder
	sb.WriteString(actionPath)
	sb.WriteString("?amount=")
	sb.WriteString(amount)
	sb.WriteString("&recipient=")
	sb.WriteString(recipient)
	return sb.String()
}

// presetAmounts multiplies base by each preset, reporting false on overflow
func presetAmounts(base uint64, presets []uint64) ([]uint64, bool) {
	ret := make([]uint64, 0, len(presets))
	for _, preset := range presets {
		hi, lo := bits.Mul64(base, preset)
		if hi != 0 {
			return nil, false
		}
		ret = append(ret, lo)
	}
	return ret, true
}

func queryOrDefault(query url.Values, key string, def string) string {
	if v := strings.TrimSpace(query.Get(key)); v != "" {
		return v
	}
	return def
}

// ResolveIcon returns candidate as an absolute URL, resolving it against origin when it is
// relative. An empty or unusable candidate yields the fallback, resolved the same way. Only
// http and https URLs are returned
func ResolveIcon(origin *url.URL, candidate string, fallback string) string {
	if ret, ok := resolveURL(origin, strings.TrimSpace(candidate)); ok {
		return ret
	}
	if ret, ok := resolveURL(origin, fallback); ok {
		return ret
	}
	return origin.ResolveReference(&url.URL{Path: "/"}).String()
}

func resolveURL(origin *url.URL, ref string) (string, bool) {
	if ref == "" {
		return "", false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "", false
	}
	if !u.IsAbs() {
		u = origin.ResolveReference(u)
	}
	ret := u.String()
	if !IsAbsoluteURL(ret) {
		return "", false
	}
	return ret, true
}
