// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"math"

	"github.com/danielhkuo/slowpoll/models"
)

// Tally is the aggregated vote count of a poll as one viewer may see it
type Tally struct {
	Visible    bool
	VoterCount int
	Options    []models.OptionTally
}

// ComputeTally counts choices per option. Counts are only filled in when the
// poll's response visibility lets viewerPHID see them; option names and the
// viewer's own choices are always present.
func ComputeTally(poll *models.Poll, viewerPHID string) Tally {
	chosen := make(map[int64]bool, len(poll.ViewerChoices))
	for _, c := range poll.ViewerChoices {
		chosen[c.OptionID] = true
	}

	tally := Tally{
		Visible: resultsVisible(poll, viewerPHID, len(chosen) > 0),
		Options: make([]models.OptionTally, len(poll.Options)),
	}

	for i, opt := range poll.Options {
		tally.Options[i] = models.OptionTally{
			OptionID: opt.ID,
			Name:     opt.Name,
			Chosen:   chosen[opt.ID],
		}
	}

	if !tally.Visible {
		return tally
	}

	// Count voters, not choices: approval polls allow several choices each
	counts := make(map[int64]int)
	voters := make(map[string]bool)
	for _, c := range poll.Choices {
		counts[c.OptionID]++
		voters[c.AuthorPHID] = true
	}
	tally.VoterCount = len(voters)

	for i := range tally.Options {
		opt := &tally.Options[i]
		opt.Count = counts[opt.OptionID]
		if tally.VoterCount > 0 {
			opt.Share = float64(opt.Count) / float64(tally.VoterCount)
		}
	}

	return tally
}

// Percent rounds a share in [0, 1] to a whole percentage
func Percent(share float64) int {
	return int(math.Round(share * 100))
}

func resultsVisible(poll *models.Poll, viewerPHID string, hasVoted bool) bool {
	isAuthor := viewerPHID != "" && viewerPHID == poll.AuthorPHID

	switch poll.ResponseVisibility {
	case models.VisibilityOwner:
		return isAuthor
	case models.VisibilityVoters:
		return hasVoted || isAuthor
	default:
		return true
	}
}
