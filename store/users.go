// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
)

// LoadUserNames maps user PHIDs to usernames. Unknown PHIDs are absent from
// the result.
func (s *Store) LoadUserNames(ctx context.Context, phids []string) (map[string]string, error) {
	names := make(map[string]string, len(phids))
	if len(phids) == 0 {
		return names, nil
	}

	args := make([]any, len(phids))
	for i, phid := range phids {
		args[i] = phid
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT phid, username FROM app_user WHERE phid IN (`+placeholders(1, len(phids))+`)
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var phid, username string
		if err := rows.Scan(&phid, &username); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		names[phid] = username
	}
	return names, rows.Err()
}
