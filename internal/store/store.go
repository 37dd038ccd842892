// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all folio entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// flagStore holds the toggle and delete operations shared by the posts and
// experiences tables.
type flagStore struct {
	db    *sql.DB
	table string
}

func (s flagStore) delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM `+s.table+` WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", s.table, err)
	}
	return mustAffect(result)
}

func (s flagStore) setFeatured(ctx context.Context, id string, featured bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE `+s.table+` SET featured = $1, updated_at = NOW() WHERE id = $2`, featured, id)
	if err != nil {
		return fmt.Errorf("set featured on %s: %w", s.table, err)
	}
	return mustAffect(result)
}

// pin clears the pin on every other row and sets it on id, atomically.
func (s flagStore) pin(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Unpin all others.
	if _, err := tx.ExecContext(ctx,
		`UPDATE `+s.table+` SET pinned = FALSE, updated_at = NOW() WHERE pinned AND id <> $1`, id); err != nil {
		return fmt.Errorf("unpin %s: %w", s.table, err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE `+s.table+` SET pinned = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pin %s: %w", s.table, err)
	}
	if err := mustAffect(result); err != nil {
		return err
	}

	return tx.Commit()
}

func (s flagStore) unpin(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE `+s.table+` SET pinned = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("unpin %s: %w", s.table, err)
	}
	return mustAffect(result)
}

// mustAffect maps "zero rows affected" to ErrNotFound.
func mustAffect(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
