// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"

	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/view"
)

// BuildPollEmbed prepares the voting widget for viewer. The poll must have
// options, choices and viewer choices loaded.
func BuildPollEmbed(poll *models.Poll, viewer models.Viewer, headless bool) view.PollEmbed {
	tally := ComputeTally(poll, viewer.PHID)

	inputType := "radio"
	if poll.Method == models.MethodApproval {
		inputType = "checkbox"
	}

	embed := view.PollEmbed{
		PollID:      poll.ID,
		Question:    poll.Question,
		Headless:    headless,
		InputType:   inputType,
		Action:      applicationURI(fmt.Sprintf("%d/vote/", poll.ID)),
		CanVote:     viewer.IsLoggedIn() && !poll.IsClosed(),
		Closed:      poll.IsClosed(),
		ShowResults: tally.Visible,
		VoterCount:  tally.VoterCount,
		Options:     make([]view.EmbedOption, len(tally.Options)),
	}

	for i, opt := range tally.Options {
		embed.Options[i] = view.EmbedOption{
			ID:      opt.OptionID,
			Name:    opt.Name,
			Count:   opt.Count,
			Percent: Percent(opt.Share),
			Chosen:  opt.Chosen,
		}
	}

	return embed
}
