// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/slowpoll/models"
)

// LoadTransactions returns every transaction on objectPHID, oldest first,
// with attached comments populated.
func (s *Store) LoadTransactions(ctx context.Context, objectPHID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT x.id, x.phid, x.object_phid, x.author_phid, x.transaction_type,
		       x.old_value, x.new_value, x.created_at,
		       c.phid, c.author_phid, c.content, c.created_at
		FROM slowvote_transaction x
		LEFT JOIN slowvote_transaction_comment c ON c.phid = x.comment_phid
		WHERE x.object_phid = $1
		ORDER BY x.created_at, x.id
	`, objectPHID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	xactions := []models.Transaction{}
	for rows.Next() {
		var (
			x                models.Transaction
			commentPHID      sql.NullString
			commentAuthor    sql.NullString
			commentContent   sql.NullString
			commentCreatedAt sql.NullTime
		)
		err := rows.Scan(
			&x.ID, &x.PHID, &x.ObjectPHID, &x.AuthorPHID, &x.TransactionType,
			&x.OldValue, &x.NewValue, &x.CreatedAt,
			&commentPHID, &commentAuthor, &commentContent, &commentCreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if commentPHID.Valid {
			x.Comment = &models.Comment{
				PHID:            commentPHID.String,
				TransactionPHID: x.PHID,
				AuthorPHID:      commentAuthor.String,
				Content:         commentContent.String,
				CreatedAt:       commentCreatedAt.Time,
			}
		}
		xactions = append(xactions, x)
	}

	return xactions, rows.Err()
}
