// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package policy

import "testing"

type testObject struct {
	author string
	view   string
	edit   string
}

func (o testObject) GetPolicy(capability Capability) string {
	if capability == CanEdit {
		return o.edit
	}
	return o.view
}

func (o testObject) HasAutomaticCapability(capability Capability, viewerPHID string) bool {
	return viewerPHID != "" && viewerPHID == o.author
}

func TestHasCapability(t *testing.T) {
	const (
		author = "PHID-USER-author"
		other  = "PHID-USER-other"
	)

	tests := []struct {
		name       string
		object     testObject
		viewer     string
		capability Capability
		expected   bool
	}{
		{"public view, logged out", testObject{author, Public, author}, "", CanView, true},
		{"users view, logged out", testObject{author, Users, author}, "", CanView, false},
		{"users view, logged in", testObject{author, Users, author}, other, CanView, true},
		{"author edit", testObject{author, Public, author}, author, CanEdit, true},
		{"non-author edit", testObject{author, Public, author}, other, CanEdit, false},
		{"no-one edit, author still passes", testObject{author, Public, NoOne}, author, CanEdit, true},
		{"no-one view, other fails", testObject{author, NoOne, NoOne}, other, CanView, false},
		{"explicit user policy", testObject{author, other, other}, other, CanEdit, true},
		{"empty policy fails", testObject{author, "", ""}, other, CanView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HasCapability(tt.viewer, tt.object, tt.capability)
			if got != tt.expected {
				t.Errorf("HasCapability() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{Public, Users, NoOne, "PHID-USER-abc"}
	for _, p := range valid {
		if !IsValid(p) {
			t.Errorf("expected %q to be valid", p)
		}
	}

	invalid := []string{"", "everyone", "PHID-POLL-abc"}
	for _, p := range invalid {
		if IsValid(p) {
			t.Errorf("expected %q to be invalid", p)
		}
	}
}

func TestDescribe(t *testing.T) {
	label, icon := Describe(Public)
	if label != "Public" || icon != "globe" {
		t.Errorf("unexpected description for public: %s/%s", label, icon)
	}

	label, _ = Describe("PHID-USER-abc")
	if label != "Custom Policy" {
		t.Errorf("expected Custom Policy, got %s", label)
	}
}
