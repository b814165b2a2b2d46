// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package policy decides who may view or edit an object.

A policy value is one of Public, Users (any logged-in viewer), NoOne, or
a single user PHID. Objects expose one policy per capability through the
Object interface.

# Checks

	if !policy.HasCapability(viewer.PHID, poll, policy.CanEdit) {
		// render the action disabled
	}

HasCapability grants automatic capabilities first, so a poll's author can
always view and edit it whatever its policies say. An empty viewer PHID is
a logged-out viewer and passes only Public.

IsValid checks a submitted policy value. Describe returns the label and
icon the page header shows for a policy.
*/
package policy
