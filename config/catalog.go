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

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/blinklabs-io/actiongate/action"
	"github.com/blinklabs-io/actiongate/routing"
	"gopkg.in/yaml.v3"
)

// Action types accepted in catalog files
const (
	ActionTypeTransfer = "transfer"
)

// Catalog is a loaded catalog file
type Catalog struct {
	Actions *action.Catalog
	// Rules is nil when the file declares none
	Rules []routing.Rule
}

type catalogFile struct {
	Rules   []routing.Rule `yaml:"rules"`
	Actions []actionEntry  `yaml:"actions"`
}

type actionEntry struct {
	Type        string   `yaml:"type"`
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Label       string   `yaml:"label"`
	BaseAmount  string   `yaml:"baseAmount"`
	Presets     []uint64 `yaml:"presets"`
	Recipient   string   `yaml:"recipient"`
}

// LoadCatalogFile reads a YAML catalog file
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	ret, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return ret, nil
}

// ParseCatalog decodes a YAML catalog. Unknown fields are rejected
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog is empty")
		}
		return nil, err
	}
	specs := make([]action.Spec, 0, len(file.Actions))
	for idx, entry := range file.Actions {
		spec, err := entry.spec()
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", idx, err)
		}
		specs = append(specs, spec)
	}
	catalog, err := action.NewCatalog(specs...)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Actions: catalog,
		Rules:   file.Rules,
	}, nil
}

// spec converts an entry into its action variant. Unset fields take the variant's defaults
func (e actionEntry) spec() (action.Spec, error) {
	switch e.Type {
	case ActionTypeTransfer:
		ret := action.DefaultTransfer()
		if e.ID != "" {
			ret.ID = e.ID
		}
		if e.Title != "" {
			ret.Title = e.Title
		}
		if e.Description != "" {
			ret.Description = e.Description
		}
		if e.Icon != "" {
			ret.Icon = e.Icon
		}
		if e.Label != "" {
			ret.Label = e.Label
		}
		if e.BaseAmount != "" {
			ret.BaseAmount = e.BaseAmount
		}
		if len(e.Presets) > 0 {
			ret.Presets = e.Presets
		}
		ret.Recipient = e.Recipient
		return ret, nil
	case "":
		return nil, errors.New("action type must be specified")
	default:
		return nil, fmt.Errorf("unknown action type %q", e.Type)
	}
}
