// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/slowpoll/models"
)

// LoadDraft returns the viewer's saved draft for draftKey (usually an object
// PHID). A missing draft, or a logged-out viewer, yields an empty draft.
func (s *Store) LoadDraft(ctx context.Context, authorPHID, draftKey string) (*models.Draft, error) {
	draft := &models.Draft{AuthorPHID: authorPHID, DraftKey: draftKey}
	if authorPHID == "" {
		return draft, nil
	}

	err := s.db.QueryRowContext(ctx, `
		SELECT draft, updated_at
		FROM draft
		WHERE author_phid = $1 AND draft_key = $2
	`, authorPHID, draftKey).Scan(&draft.Draft, &draft.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return draft, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query draft: %w", err)
	}
	return draft, nil
}
