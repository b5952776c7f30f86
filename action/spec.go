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
	"regexp"
	"slices"

	"github.com/blinklabs-io/actiongate/ledger"
)

// Defaults for the native SOL transfer action
const (
	DefaultTransferID          = "transfer-sol"
	DefaultTransferTitle       = "Send SOL"
	DefaultTransferDescription = "Send SOL to another Solana wallet"
	DefaultTransferIcon        = "/solana_devnet.png"
	DefaultTransferLabel       = "Send SOL"
	DefaultTransferBaseAmount  = "0.01"

	amountParameterName     = "amount"
	amountParameterLabel    = "Enter the amount of SOL to send"
	recipientParameterName  = "recipient"
	recipientParameterLabel = "Enter the recipient's Solana address"
)

// DefaultTransferPresets are the multiples of the base amount offered as one-click links
var DefaultTransferPresets = []uint64{1, 5, 10}

var actionIDRegexp = regexp.MustCompile(`^[A-Za-z0-9_~-][A-Za-z0-9._~-]*$`)

// Spec is an action variant. The set of variants is closed: Describe and Compile switch over
// the concrete types and treat anything else as an internal error
type Spec interface {
	ActionID() string
	Validate() error
	isSpec()
}

// Transfer sends native SOL from the payer to a recipient
type Transfer struct {
	ID          string
	Title       string
	Description string
	// Icon may be relative, in which case it is resolved against the request origin
	Icon  string
	Label string
	// BaseAmount is a decimal SOL amount. Presets are multiples of it
	BaseAmount string
	Presets    []uint64
	// Recipient is used in descriptor links when the request names none. When both are empty the
	// links declare a recipient parameter
	Recipient string
}

// DefaultTransfer returns a Transfer with every field set to its default
func DefaultTransfer() *Transfer {
	return &Transfer{
		ID:          DefaultTransferID,
		Title:       DefaultTransferTitle,
		Description: DefaultTransferDescription,
		Icon:        DefaultTransferIcon,
		Label:       DefaultTransferLabel,
		BaseAmount:  DefaultTransferBaseAmount,
		Presets:     slices.Clone(DefaultTransferPresets),
	}
}

func (t *Transfer) isSpec() {}

func (t *Transfer) ActionID() string {
	return t.ID
}

func (t *Transfer) Validate() error {
	if err := validateActionID(t.ID); err != nil {
		return err
	}
	if t.Title == "" {
		return fmt.Errorf("action %q: title must not be empty", t.ID)
	}
	if t.Icon == "" {
		return fmt.Errorf("action %q: icon must not be empty", t.ID)
	}
	base, err := ledger.ParseSol(t.BaseAmount)
	if err != nil {
		return fmt.Errorf("action %q: base amount: %w", t.ID, err)
	}
	if base == 0 {
		return fmt.Errorf("action %q: base amount must be positive", t.ID)
	}
	if len(t.Presets) == 0 {
		return fmt.Errorf("action %q: at least one preset is required", t.ID)
	}
	for _, preset := range t.Presets {
		if preset == 0 {
			return fmt.Errorf("action %q: presets must be positive", t.ID)
		}
	}
	if _, ok := presetAmounts(base, t.Presets); !ok {
		return fmt.Errorf("action %q: preset amounts overflow", t.ID)
	}
	if t.Recipient != "" {
		if _, err := ledger.NewPublicKeyFromBase58(t.Recipient); err != nil {
			return fmt.Errorf("action %q: recipient: %w", t.ID, err)
		}
	}
	return nil
}

// baseLamports returns the configured base amount. Validate guarantees it parses
func (t *Transfer) baseLamports() uint64 {
	ret, err := ledger.ParseSol(t.BaseAmount)
	if err != nil || ret == 0 {
		ret, _ = ledger.ParseSol(DefaultTransferBaseAmount)
	}
	return ret
}

func validateActionID(id string) error {
	if id == "" {
		return errors.New("action id must not be empty")
	}
	if id == "." || id == ".." || !actionIDRegexp.MatchString(id) {
		return fmt.Errorf("action id %q must be a single URL path segment", id)
	}
	return nil
}

// Catalog is an immutable index of action specs by ID
type Catalog struct {
	specs map[string]Spec
	ids   []string
}

// NewCatalog validates the given specs and indexes them. IDs must be unique
func NewCatalog(specs ...Spec) (*Catalog, error) {
	if len(specs) == 0 {
		return nil, errors.New("catalog must contain at least one action")
	}
	c := &Catalog{
		specs: make(map[string]Spec, len(specs)),
	}
	for _, spec := range specs {
		if spec == nil {
			return nil, errors.New("nil action in catalog")
		}
		if err := spec.Validate(); err != nil {
			return nil, err
		}
		id := spec.ActionID()
		if _, ok := c.specs[id]; ok {
			return nil, fmt.Errorf("duplicate action id %q", id)
		}
		c.specs[id] = spec
		c.ids = append(c.ids, id)
	}
	return c, nil
}

// Lookup returns the spec with the given ID
func (c *Catalog) Lookup(id string) (Spec, bool) {
	spec, ok := c.specs[id]
	return spec, ok
}

// IDs returns the action IDs in catalog order
func (c *Catalog) IDs() []string {
	return slices.Clone(c.ids)
}

func (c *Catalog) Len() int {
	return len(c.ids)
}
