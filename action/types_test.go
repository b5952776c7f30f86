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

package action_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/blinklabs-io/actiongate/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionLinkValidate(t *testing.T) {
	testDefs := []struct {
		link  action.ActionLink
		valid bool
	}{
		{
			link:  action.ActionLink{Type: "transaction", Label: "1 SOL", Href: "/a?amount=1"},
			valid: true,
		},
		{
			link: action.ActionLink{
				Type:  "transaction",
				Label: "Send",
				Href:  "/a?amount={amount}&memo={memo}",
				Parameters: []action.ActionParameter{
					{Name: "amount", Type: "number"},
					{Name: "memo", Type: "text"},
				},
			},
			valid: true,
		},
		// Placeholder without a parameter
		{
			link:  action.ActionLink{Type: "transaction", Label: "Send", Href: "/a?amount={amount}"},
			valid: false,
		},
		// Parameter without a placeholder
		{
			link: action.ActionLink{
				Type:       "transaction",
				Label:      "Send",
				Href:       "/a",
				Parameters: []action.ActionParameter{{Name: "amount"}},
			},
			valid: false,
		},
		// Duplicate parameter names
		{
			link: action.ActionLink{
				Type:  "transaction",
				Label: "Send",
				Href:  "/a?amount={amount}",
				Parameters: []action.ActionParameter{
					{Name: "amount"},
					{Name: "amount"},
				},
			},
			valid: false,
		},
		// Unknown parameter type
		{
			link: action.ActionLink{
				Type:       "transaction",
				Label:      "Send",
				Href:       "/a?amount={amount}",
				Parameters: []action.ActionParameter{{Name: "amount", Type: "slider"}},
			},
			valid: false,
		},
		{
			link:  action.ActionLink{Type: "post", Label: "Send", Href: "/a"},
			valid: false,
		},
		{
			link:  action.ActionLink{Type: "transaction", Href: "/a"},
			valid: false,
		},
	}
	for idx, testDef := range testDefs {
		err := testDef.link.Validate()
		if testDef.valid && err != nil {
			t.Fatalf("test %d: unexpected error: %s", idx, err)
		}
		if !testDef.valid && err == nil {
			t.Fatalf("test %d: did not get expected error", idx)
		}
	}
}

func TestActionDescriptorValidate(t *testing.T) {
	valid := action.ActionDescriptor{
		Type:  "action",
		Icon:  "https://example.com/icon.png",
		Title: "Send SOL",
		Links: action.ActionLinks{
			Actions: []action.ActionLink{
				{Type: "transaction", Label: "1 SOL", Href: "/a?amount=1"},
			},
		},
	}
	require.NoError(t, valid.Validate())

	relativeIcon := valid
	relativeIcon.Icon = "/icon.png"
	assert.Error(t, relativeIcon.Validate())

	noLinks := valid
	noLinks.Links = action.ActionLinks{}
	assert.Error(t, noLinks.Validate())

	badType := valid
	badType.Type = "completed"
	assert.Error(t, badType.Validate())
}

func TestActionDescriptorJSON(t *testing.T) {
	desc := action.ActionDescriptor{
		Type:        "action",
		Icon:        "https://example.com/icon.png",
		Title:       "Send SOL",
		Description: "desc",
		Links: action.ActionLinks{
			Actions: []action.ActionLink{
				{Type: "transaction", Label: "1 SOL", Href: "/a?amount=1"},
			},
		},
	}
	data, err := json.Marshal(desc)
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`{"type":"action","icon":"https://example.com/icon.png","title":"Send SOL","description":"desc","links":{"actions":[{"type":"transaction","label":"1 SOL","href":"/a?amount=1"}]}}`,
		string(data),
	)
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &action.Error{Code: action.CodeUnavailable, Message: "network unavailable", Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "network unavailable: boom", err.Error())
	assert.Equal(t, "unavailable", err.Code.String())

	wrapped := action.AsError(err)
	assert.Same(t, err, wrapped)
	internal := action.AsError(cause)
	assert.Equal(t, action.CodeInternal, internal.Code)
	assert.Equal(t, action.MsgInternalServerError, internal.Message)
}

func TestCatalog(t *testing.T) {
	second := action.DefaultTransfer()
	second.ID = "tip"
	second.BaseAmount = "0.5"
	catalog, err := action.NewCatalog(action.DefaultTransfer(), second)
	require.NoError(t, err)
	assert.Equal(t, []string{"transfer-sol", "tip"}, catalog.IDs())
	assert.Equal(t, 2, catalog.Len())

	spec, ok := catalog.Lookup("tip")
	require.True(t, ok)
	assert.Same(t, second, spec)
	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)

	_, err = action.NewCatalog(action.DefaultTransfer(), action.DefaultTransfer())
	assert.Error(t, err)
	_, err = action.NewCatalog()
	assert.Error(t, err)
	_, err = action.NewCatalog(nil)
	assert.Error(t, err)
}

func TestTransferValidate(t *testing.T) {
	testDefs := []struct {
		modify func(*action.Transfer)
		valid  bool
	}{
		{modify: func(*action.Transfer) {}, valid: true},
		{modify: func(s *action.Transfer) { s.Recipient = nullAddress }, valid: true},
		{modify: func(s *action.Transfer) { s.Label = "" }, valid: true},
		{modify: func(s *action.Transfer) { s.ID = "" }, valid: false},
		{modify: func(s *action.Transfer) { s.ID = "a/b" }, valid: false},
		{modify: func(s *action.Transfer) { s.ID = ".." }, valid: false},
		{modify: func(s *action.Transfer) { s.ID = "{id}" }, valid: false},
		{modify: func(s *action.Transfer) { s.Title = "" }, valid: false},
		{modify: func(s *action.Transfer) { s.Icon = "" }, valid: false},
		{modify: func(s *action.Transfer) { s.BaseAmount = "0" }, valid: false},
		{modify: func(s *action.Transfer) { s.BaseAmount = "lots" }, valid: false},
		{modify: func(s *action.Transfer) { s.Presets = nil }, valid: false},
		{modify: func(s *action.Transfer) { s.Presets = []uint64{1, 0} }, valid: false},
		{modify: func(s *action.Transfer) { s.BaseAmount = "18000000000"; s.Presets = []uint64{2} }, valid: false},
		{modify: func(s *action.Transfer) { s.Recipient = "nope" }, valid: false},
	}
	for idx, testDef := range testDefs {
		spec := action.DefaultTransfer()
		testDef.modify(spec)
		err := spec.Validate()
		if testDef.valid && err != nil {
			t.Fatalf("test %d: unexpected error: %s", idx, err)
		}
		if !testDef.valid && err == nil {
			t.Fatalf("test %d: did not get expected error", idx)
		}
	}
}
