// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/danielhkuo/slowpoll/models"
)

func TestComputeTally(t *testing.T) {
	options := []models.Option{{ID: 1, Name: "Mon"}, {ID: 2, Name: "Tue"}, {ID: 3, Name: "Wed"}}
	choices := []models.Choice{
		{OptionID: 1, AuthorPHID: "PHID-USER-a"},
		{OptionID: 2, AuthorPHID: "PHID-USER-a"},
		{OptionID: 1, AuthorPHID: "PHID-USER-b"},
		{OptionID: 1, AuthorPHID: "PHID-USER-c"},
	}

	poll := &models.Poll{
		AuthorPHID:         "PHID-USER-a",
		Method:             models.MethodApproval,
		ResponseVisibility: models.VisibilityVisible,
		Options:            options,
		Choices:            choices,
		ViewerChoices:      choices[:2],
	}

	tally := ComputeTally(poll, "PHID-USER-a")

	if !tally.Visible {
		t.Fatal("Expected visible tally")
	}
	// Approval voters count once each, however many options they chose
	if tally.VoterCount != 3 {
		t.Errorf("Expected 3 voters, got %d", tally.VoterCount)
	}

	want := []struct {
		count   int
		percent int
		chosen  bool
	}{
		{3, 100, true},
		{1, 33, true},
		{0, 0, false},
	}
	for i, w := range want {
		got := tally.Options[i]
		if got.Count != w.count || Percent(got.Share) != w.percent || got.Chosen != w.chosen {
			t.Errorf("Option %d: expected %+v, got count=%d percent=%d chosen=%v",
				got.OptionID, w, got.Count, Percent(got.Share), got.Chosen)
		}
	}
}

func TestComputeTally_Visibility(t *testing.T) {
	author := "PHID-USER-author"
	voter := "PHID-USER-voter"
	stranger := "PHID-USER-stranger"

	tests := []struct {
		name       string
		visibility string
		viewer     string
		voted      bool
		visible    bool
	}{
		{"visible, logged out", models.VisibilityVisible, "", false, true},
		{"voters, has voted", models.VisibilityVoters, voter, true, true},
		{"voters, has not voted", models.VisibilityVoters, stranger, false, false},
		{"voters, author", models.VisibilityVoters, author, false, true},
		{"owner, author", models.VisibilityOwner, author, false, true},
		{"owner, voter", models.VisibilityOwner, voter, true, false},
		{"owner, logged out", models.VisibilityOwner, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poll := &models.Poll{
				AuthorPHID:         author,
				ResponseVisibility: tt.visibility,
				Options:            []models.Option{{ID: 1, Name: "Yes"}},
				Choices:            []models.Choice{{OptionID: 1, AuthorPHID: voter}},
			}
			if tt.voted {
				poll.ViewerChoices = poll.Choices
			}

			tally := ComputeTally(poll, tt.viewer)

			if tally.Visible != tt.visible {
				t.Errorf("Expected visible=%v, got %v", tt.visible, tally.Visible)
			}
			if !tally.Visible && (tally.VoterCount != 0 || tally.Options[0].Count != 0) {
				t.Error("Hidden tally leaked counts")
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		share float64
		want  int
	}{
		{0, 0},
		{1, 100},
		{1.0 / 3.0, 33},
		{2.0 / 3.0, 67},
	}

	for _, tt := range tests {
		if got := Percent(tt.share); got != tt.want {
			t.Errorf("Percent(%v) = %d, want %d", tt.share, got, tt.want)
		}
	}
}
