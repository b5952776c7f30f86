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

// Package routing implements the actions.json routing manifest, which maps website paths to the
// action endpoints that serve them.
//
// Patterns are slash-separated. A "*" segment matches exactly one non-empty segment and a
// trailing "**" segment matches zero or more segments. Other segments are matched with
// path.Match. The text captured by each wildcard is substituted, in order, into the wildcards of
// the rule's API path
package routing

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	wildcardSegment = "*"
	globstarSegment = "**"
)

var (
	ErrInvalidPattern   = errors.New("invalid routing pattern")
	ErrNoSelfMapping    = errors.New("action API paths do not map to themselves")
	ErrWildcardMismatch = errors.New("API path wildcards do not match path pattern")
)

// Rule maps website paths matching PathPattern to APIPath
type Rule struct {
	PathPattern string `json:"pathPattern" yaml:"pathPattern"`
	APIPath     string `json:"apiPath"     yaml:"apiPath"`
}

// Manifest is the document served at /actions.json. Rules are evaluated in order and the first
// match wins
type Manifest struct {
	Rules []Rule `json:"rules"`
}

// DefaultRules returns the rules for a site whose actions live under apiPrefix: action URLs map
// to themselves, and every top-level page maps to the action of the same name
func DefaultRules(apiPrefix string) []Rule {
	prefix := strings.TrimSuffix(apiPrefix, "/")
	return []Rule{
		{
			PathPattern: prefix + "/" + globstarSegment,
			APIPath:     prefix + "/" + globstarSegment,
		},
		{
			PathPattern: "/" + wildcardSegment,
			APIPath:     prefix + "/" + wildcardSegment,
		},
	}
}

// NewManifest returns a manifest for the given rules after validating them against apiPrefix and
// the IDs of the actions served under it
func NewManifest(apiPrefix string, rules []Rule, actionIDs ...string) (*Manifest, error) {
	m := &Manifest{
		Rules: append([]Rule(nil), rules...),
	}
	if err := m.Validate(apiPrefix, actionIDs...); err != nil {
		return nil, err
	}
	return m, nil
}

// Resolve returns the API path for the first rule matching p
func (m *Manifest) Resolve(p string) (string, bool) {
	for _, rule := range m.Rules {
		captures, ok := match(rule.PathPattern, p)
		if !ok {
			continue
		}
		return substitute(rule.APIPath, captures), true
	}
	return "", false
}

// Validate checks every rule for well-formed patterns and checks that the URL of each action ID
// under apiPrefix resolves to itself
func (m *Manifest) Validate(apiPrefix string, actionIDs ...string) error {
	if len(m.Rules) == 0 {
		return fmt.Errorf("%w: manifest has no rules", ErrInvalidPattern)
	}
	for idx, rule := range m.Rules {
		if err := rule.validate(); err != nil {
			return fmt.Errorf("rule %d: %w", idx, err)
		}
	}
	prefix := strings.TrimSuffix(apiPrefix, "/")
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("%w: API prefix must start with '/': %q", ErrInvalidPattern, apiPrefix)
	}
	for _, id := range actionIDs {
		actionPath := prefix + "/" + strings.Trim(id, "/")
		resolved, ok := m.Resolve(actionPath)
		if !ok || resolved != actionPath {
			return fmt.Errorf("%w: %s resolves to %q", ErrNoSelfMapping, actionPath, resolved)
		}
	}
	return nil
}

func (r Rule) validate() error {
	patternWildcards, err := wildcards(r.PathPattern)
	if err != nil {
		return fmt.Errorf("path pattern: %w", err)
	}
	apiWildcards, err := wildcards(r.APIPath)
	if err != nil {
		return fmt.Errorf("API path: %w", err)
	}
	if len(apiWildcards) == 0 {
		return nil
	}
	if len(apiWildcards) != len(patternWildcards) {
		return fmt.Errorf(
			"%w: %q has %d, %q has %d",
			ErrWildcardMismatch,
			r.APIPath,
			len(apiWildcards),
			r.PathPattern,
			len(patternWildcards),
		)
	}
	for i := range apiWildcards {
		if apiWildcards[i] == globstarSegment && patternWildcards[i] != globstarSegment {
			return fmt.Errorf(
				"%w: %q uses ** where %q uses *",
				ErrWildcardMismatch,
				r.APIPath,
				r.PathPattern,
			)
		}
	}
	return nil
}

// wildcards checks the syntax of a pattern and returns its capturing segments in order
func wildcards(pattern string) ([]string, error) {
	if !strings.HasPrefix(pattern, "/") {
		return nil, fmt.Errorf("%w: %q must start with '/'", ErrInvalidPattern, pattern)
	}
	segments := strings.Split(pattern[1:], "/")
	var ret []string
	for idx, segment := range segments {
		switch {
		case segment == globstarSegment:
			if idx != len(segments)-1 {
				return nil, fmt.Errorf(
					"%w: %q: '**' is only permitted as the last segment",
					ErrInvalidPattern,
					pattern,
				)
			}
			ret = append(ret, segment)
		case segment == wildcardSegment:
			ret = append(ret, segment)
		case strings.Contains(segment, globstarSegment):
			return nil, fmt.Errorf(
				"%w: %q: '**' must be a whole segment",
				ErrInvalidPattern,
				pattern,
			)
		default:
			if _, err := path.Match(segment, ""); err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
			}
		}
	}
	return ret, nil
}

// match reports whether p matches pattern and returns the text captured by each wildcard
func match(pattern string, p string) ([]string, bool) {
	if !strings.HasPrefix(pattern, "/") || !strings.HasPrefix(p, "/") {
		return nil, false
	}
	patternSegments := strings.Split(pattern[1:], "/")
	pathSegments := strings.Split(p[1:], "/")
	var captures []string
	for idx, segment := range patternSegments {
		if segment == globstarSegment && idx == len(patternSegments)-1 {
			rest := pathSegments[min(idx, len(pathSegments)):]
			// A trailing slash is not a segment
			if len(rest) == 1 && rest[0] == "" {
				rest = nil
			}
			captures = append(captures, strings.Join(rest, "/"))
			return captures, true
		}
		if idx >= len(pathSegments) {
			return nil, false
		}
		value := pathSegments[idx]
		if segment == wildcardSegment {
			if value == "" {
				return nil, false
			}
			captures = append(captures, value)
			continue
		}
		ok, err := path.Match(segment, value)
		if err != nil || !ok {
			return nil, false
		}
	}
	if len(pathSegments) != len(patternSegments) {
		return nil, false
	}
	return captures, true
}

// substitute replaces the wildcards of apiPath with captures, in order. An empty ** capture
// removes its segment along with the preceding slash
func substitute(apiPath string, captures []string) string {
	segments := strings.Split(apiPath, "/")
	next := 0
	ret := make([]string, 0, len(segments))
	for _, segment := range segments {
		if (segment == wildcardSegment || segment == globstarSegment) && next < len(captures) {
			capture := captures[next]
			next++
			if capture == "" && segment == globstarSegment {
				continue
			}
			ret = append(ret, capture)
			continue
		}
		ret = append(ret, segment)
	}
	out := strings.Join(ret, "/")
	if out == "" {
		return "/"
	}
	return out
}
