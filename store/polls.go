// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/danielhkuo/slowpoll/auth"
	"github.com/danielhkuo/slowpoll/models"
	"github.com/danielhkuo/slowpoll/policy"
)

// Need selects which related rows LoadPoll fetches along with the poll.
type Need struct {
	Options       bool
	Choices       bool
	ViewerChoices bool
}

// LoadPoll fetches a poll by ID on behalf of viewer. Polls the viewer cannot
// see are reported as ErrNotFound, exactly like missing ones.
func (s *Store) LoadPoll(ctx context.Context, viewer models.Viewer, id int64, need Need) (*models.Poll, error) {
	var poll models.Poll
	err := s.db.QueryRowContext(ctx, `
		SELECT id, phid, question, description, author_phid, method,
		       response_visibility, status, view_policy, edit_policy,
		       created_at, updated_at
		FROM slowvote_poll
		WHERE id = $1
	`, id).Scan(
		&poll.ID, &poll.PHID, &poll.Question, &poll.Description, &poll.AuthorPHID,
		&poll.Method, &poll.ResponseVisibility, &poll.Status, &poll.ViewPolicy,
		&poll.EditPolicy, &poll.CreatedAt, &poll.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query poll: %w", err)
	}

	if !policy.HasCapability(viewer.PHID, &poll, policy.CanView) {
		return nil, ErrNotFound
	}

	if need.Options {
		if poll.Options, err = s.loadOptions(ctx, poll.ID); err != nil {
			return nil, err
		}
	}

	if need.Choices || need.ViewerChoices {
		choices, err := s.loadChoices(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		if need.Choices {
			poll.Choices = choices
		}
		if need.ViewerChoices {
			poll.ViewerChoices = []models.Choice{}
			for _, c := range choices {
				if viewer.IsLoggedIn() && c.AuthorPHID == viewer.PHID {
					poll.ViewerChoices = append(poll.ViewerChoices, c)
				}
			}
		}
	}

	return &poll, nil
}

func (s *Store) loadOptions(ctx context.Context, pollID int64) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, name
		FROM slowvote_option
		WHERE poll_id = $1
		ORDER BY id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Name); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	return options, rows.Err()
}

func (s *Store) loadChoices(ctx context.Context, pollID int64) ([]models.Choice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, option_id, author_phid, created_at
		FROM slowvote_choice
		WHERE poll_id = $1
		ORDER BY id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.PollID, &c.OptionID, &c.AuthorPHID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// CreatePoll inserts poll and its initial options, filling in ID, PHID and
// timestamps. A create transaction is recorded for the author.
func (s *Store) CreatePoll(ctx context.Context, poll *models.Poll, options []string) error {
	now := time.Now()
	poll.PHID = auth.NewPHID(models.PHIDTypePoll)
	poll.CreatedAt = now
	poll.UpdatedAt = now
	if poll.Status == "" {
		poll.Status = models.StatusOpen
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO slowvote_poll (phid, question, description, author_phid, method,
		                           response_visibility, status, view_policy, edit_policy,
		                           created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`, poll.PHID, poll.Question, poll.Description, poll.AuthorPHID, poll.Method,
		poll.ResponseVisibility, poll.Status, poll.ViewPolicy, poll.EditPolicy,
		now, now).Scan(&poll.ID)
	if err != nil {
		return fmt.Errorf("failed to insert poll: %w", err)
	}

	if _, err := insertTransaction(ctx, tx, poll.PHID, poll.AuthorPHID, models.TransactionCreate, "", poll.Question, now); err != nil {
		return err
	}

	poll.Options = []models.Option{}
	for _, name := range options {
		opt, err := addOption(ctx, tx, poll, poll.AuthorPHID, name, now)
		if err != nil {
			return err
		}
		poll.Options = append(poll.Options, opt)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit poll: %w", err)
	}
	return nil
}

// AddOption appends an option to poll on behalf of actorPHID
func (s *Store) AddOption(ctx context.Context, poll *models.Poll, actorPHID, name string) (models.Option, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Option{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	opt, err := addOption(ctx, tx, poll, actorPHID, name, time.Now())
	if err != nil {
		return models.Option{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Option{}, fmt.Errorf("failed to commit option: %w", err)
	}
	return opt, nil
}

func addOption(ctx context.Context, tx *sql.Tx, poll *models.Poll, actorPHID, name string, now time.Time) (models.Option, error) {
	opt := models.Option{PollID: poll.ID, Name: name}
	err := tx.QueryRowContext(ctx, `
		INSERT INTO slowvote_option (poll_id, name, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, poll.ID, name, now).Scan(&opt.ID)
	if err != nil {
		return models.Option{}, fmt.Errorf("failed to insert option: %w", err)
	}

	if _, err := insertTransaction(ctx, tx, poll.PHID, actorPHID, models.TransactionAddOption, "", name, now); err != nil {
		return models.Option{}, err
	}
	return opt, nil
}

// UpdatePoll applies the non-nil fields of req to poll, recording one
// transaction per field that actually changed. Returns the number of changes.
func (s *Store) UpdatePoll(ctx context.Context, poll *models.Poll, actorPHID string, req models.EditPollRequest) (int, error) {
	type change struct {
		xactionType string
		oldValue    string
		newValue    string
	}

	var changes []change
	if req.Question != nil && *req.Question != poll.Question {
		changes = append(changes, change{models.TransactionQuestion, poll.Question, *req.Question})
		poll.Question = *req.Question
	}
	if req.Description != nil && *req.Description != poll.Description {
		changes = append(changes, change{models.TransactionDescription, poll.Description, *req.Description})
		poll.Description = *req.Description
	}
	if req.Status != nil && *req.Status != poll.Status {
		if *req.Status != models.StatusOpen && *req.Status != models.StatusClosed {
			return 0, fmt.Errorf("%w: unknown status %q", ErrInvalid, *req.Status)
		}
		changes = append(changes, change{models.TransactionClose, poll.Status, *req.Status})
		poll.Status = *req.Status
	}

	if len(changes) == 0 {
		return 0, nil
	}

	now := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE slowvote_poll
		SET question = $1, description = $2, status = $3, updated_at = $4
		WHERE id = $5
	`, poll.Question, poll.Description, poll.Status, now, poll.ID)
	if err != nil {
		return 0, fmt.Errorf("failed to update poll: %w", err)
	}

	for _, c := range changes {
		if _, err := insertTransaction(ctx, tx, poll.PHID, actorPHID, c.xactionType, c.oldValue, c.newValue, now); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit poll update: %w", err)
	}
	poll.UpdatedAt = now
	return len(changes), nil
}

// SetChoices replaces the voter's choices on poll with optionIDs. The IDs must
// belong to poll.Options; validation of counts is left to the caller. Votes
// are not transactions: who voted is governed by response visibility, not the
// timeline.
func (s *Store) SetChoices(ctx context.Context, poll *models.Poll, voterPHID string, optionIDs []int64) error {
	valid := make(map[int64]bool, len(poll.Options))
	for _, opt := range poll.Options {
		valid[opt.ID] = true
	}
	for _, id := range optionIDs {
		if !valid[id] {
			return fmt.Errorf("%w: option %d does not belong to poll %d", ErrInvalid, id, poll.ID)
		}
	}

	now := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Delete old choices
	_, err = tx.ExecContext(ctx, `
		DELETE FROM slowvote_choice WHERE poll_id = $1 AND author_phid = $2
	`, poll.ID, voterPHID)
	if err != nil {
		return fmt.Errorf("failed to delete old choices: %w", err)
	}

	for _, id := range dedupe(optionIDs) {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO slowvote_choice (poll_id, option_id, author_phid, created_at)
			VALUES ($1, $2, $3, $4)
		`, poll.ID, id, voterPHID, now)
		if err != nil {
			return fmt.Errorf("failed to insert choice: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit choices: %w", err)
	}
	return nil
}

// dedupe returns the distinct IDs in ascending order
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
