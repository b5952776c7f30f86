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
	"net/url"
	"regexp"
	"slices"
)

const (
	TypeAction      = "action"
	TypeTransaction = "transaction"
)

// Parameter input types understood by action clients
const (
	ParameterTypeText          = "text"
	ParameterTypeEmail         = "email"
	ParameterTypeURL           = "url"
	ParameterTypeNumber        = "number"
	ParameterTypeDate          = "date"
	ParameterTypeDatetimeLocal = "datetime-local"
	ParameterTypeCheckbox      = "checkbox"
	ParameterTypeRadio         = "radio"
	ParameterTypeTextarea      = "textarea"
	ParameterTypeSelect        = "select"
)

var parameterTypes = []string{
	ParameterTypeText,
	ParameterTypeEmail,
	ParameterTypeURL,
	ParameterTypeNumber,
	ParameterTypeDate,
	ParameterTypeDatetimeLocal,
	ParameterTypeCheckbox,
	ParameterTypeRadio,
	ParameterTypeTextarea,
	ParameterTypeSelect,
}

var placeholderRegexp = regexp.MustCompile(`\{([^{}]*)\}`)

// ActionDescriptor is the body of a successful GET on an action endpoint
type ActionDescriptor struct {
	Type        string      `json:"type"`
	Icon        string      `json:"icon"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Label       string      `json:"label,omitempty"`
	Disabled    bool        `json:"disabled,omitempty"`
	Links       ActionLinks `json:"links"`
}

type ActionLinks struct {
	Actions []ActionLink `json:"actions"`
}

// ActionLink is one invocable choice within a descriptor. Href may carry {name} placeholders,
// one for each declared parameter
type ActionLink struct {
	Type       string            `json:"type"`
	Label      string            `json:"label"`
	Href       string            `json:"href"`
	Parameters []ActionParameter `json:"parameters,omitempty"`
}

type ActionParameter struct {
	Name     string `json:"name"`
	Label    string `json:"label,omitempty"`
	Type     string `json:"type,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// TransactionRequest is the body of a POST on an action endpoint
type TransactionRequest struct {
	Account string `json:"account"`
}

// TransactionResponse carries an unsigned, base64-encoded transaction
type TransactionResponse struct {
	Type        string `json:"type"`
	Transaction string `json:"transaction"`
	Message     string `json:"message,omitempty"`
}

// ActionError is the body of every 4xx and 5xx response
type ActionError struct {
	Message string `json:"message"`
}

func (d *ActionDescriptor) Validate() error {
	if d.Type != TypeAction {
		return fmt.Errorf("descriptor type must be %q, got %q", TypeAction, d.Type)
	}
	if !IsAbsoluteURL(d.Icon) {
		return fmt.Errorf("descriptor icon must be an absolute URL: %q", d.Icon)
	}
	if d.Title == "" {
		return errors.New("descriptor title must not be empty")
	}
	if len(d.Links.Actions) == 0 {
		return errors.New("descriptor must have at least one link")
	}
	for idx, link := range d.Links.Actions {
		if err := link.Validate(); err != nil {
			return fmt.Errorf("link %d: %w", idx, err)
		}
	}
	return nil
}

func (l *ActionLink) Validate() error {
	if l.Type != TypeTransaction {
		return fmt.Errorf("link type must be %q, got %q", TypeTransaction, l.Type)
	}
	if l.Label == "" {
		return errors.New("link label must not be empty")
	}
	if l.Href == "" {
		return errors.New("link href must not be empty")
	}
	var names []string
	for _, param := range l.Parameters {
		if param.Name == "" {
			return errors.New("parameter name must not be empty")
		}
		if slices.Contains(names, param.Name) {
			return fmt.Errorf("duplicate parameter name %q", param.Name)
		}
		if param.Type != "" && !slices.Contains(parameterTypes, param.Type) {
			return fmt.Errorf("parameter %q has unknown type %q", param.Name, param.Type)
		}
		names = append(names, param.Name)
	}
	placeholders := l.Placeholders()
	for _, name := range placeholders {
		if !slices.Contains(names, name) {
			return fmt.Errorf("href placeholder {%s} has no matching parameter", name)
		}
	}
	for _, name := range names {
		if !slices.Contains(placeholders, name) {
			return fmt.Errorf("parameter %q has no matching href placeholder", name)
		}
	}
	return nil
}

// Placeholders returns the names of the {name} placeholders in the link href
func (l *ActionLink) Placeholders() []string {
	var ret []string
	for _, match := range placeholderRegexp.FindAllStringSubmatch(l.Href, -1) {
		ret = append(ret, match[1])
	}
	return ret
}

// IsAbsoluteURL reports whether s is an absolute http(s) URL with a host
func IsAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
