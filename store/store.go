// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/slowpoll/auth"
	"github.com/danielhkuo/slowpoll/models"
)

var (
	// ErrNotFound means the object does not exist or the viewer cannot see it.
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid request")
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Health checks the database connection
func (s *Store) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// placeholders returns "$start, $start+1, ..." for n arguments
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = "$" + strconv.Itoa(start+i)
	}
	return strings.Join(parts, ", ")
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// insertTransaction records one change to an object and returns its PHID
func insertTransaction(ctx context.Context, tx execer, objectPHID, authorPHID, xactionType, oldValue, newValue string, now time.Time) (string, error) {
	phid := auth.NewPHID(models.PHIDTypeTransaction)
	_, err := tx.ExecContext(ctx, `
		INSERT INTO slowvote_transaction (phid, object_phid, author_phid, transaction_type, old_value, new_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, phid, objectPHID, authorPHID, xactionType, oldValue, newValue, now)
	if err != nil {
		return "", fmt.Errorf("failed to insert transaction: %w", err)
	}
	return phid, nil
}
