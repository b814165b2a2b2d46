// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package policy

import "strings"

type Capability string

const (
	CanView Capability = "view"
	CanEdit Capability = "edit"
)

// Global policy values. Any other value is a user PHID.
const (
	Public = "public"
	Users  = "users"
	NoOne  = "no-one"
)

// Object is anything guarded by policies.
type Object interface {
	GetPolicy(capability Capability) string
	HasAutomaticCapability(capability Capability, viewerPHID string) bool
}

// HasCapability reports whether the viewer holds capability on object.
// An empty viewerPHID is a logged-out viewer.
func HasCapability(viewerPHID string, object Object, capability Capability) bool {
	if object.HasAutomaticCapability(capability, viewerPHID) {
		return true
	}

	return PassesPolicy(viewerPHID, object.GetPolicy(capability))
}

// PassesPolicy evaluates a single policy value for a viewer
func PassesPolicy(viewerPHID, policy string) bool {
	switch policy {
	case Public:
		return true
	case Users:
		return viewerPHID != ""
	case NoOne, "":
		return false
	default:
		return viewerPHID != "" && viewerPHID == policy
	}
}

// IsValid checks that a policy value is one this package can evaluate
func IsValid(policy string) bool {
	switch policy {
	case Public, Users, NoOne:
		return true
	}
	return strings.HasPrefix(policy, "PHID-USER-")
}

// Describe returns a short label and icon name for a policy, shown next to
// object headers.
func Describe(policy string) (label, icon string) {
	switch policy {
	case Public:
		return "Public", "globe"
	case Users:
		return "All Users", "users"
	case NoOne:
		return "No One", "lock"
	default:
		return "Custom Policy", "user"
	}
}
