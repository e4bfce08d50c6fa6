package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no row matches the given id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on a unique constraint violation.
	ErrDuplicate = errors.New("duplicate")
	// ErrInvalidReference is returned when a foreign key points nowhere.
	ErrInvalidReference = errors.New("invalid reference")
	// ErrInvalidInput is returned when postgres rejects a value's format or range (e.g. a bad date).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoDatabase is returned when the pool is not available.
	ErrNoDatabase = errors.New("database not available")
)

// Postgres SQLSTATE codes we classify.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeInvalidText         = "22P02"
	codeInvalidDatetime     = "22007"
	codeDatetimeOverflow    = "22008"
	codeNumericOutOfRange   = "22003"
)

// classify wraps err with a sentinel when the driver error has a known meaning.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrDuplicate, pqErr.Message)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidReference, pqErr.Message)
		case codeInvalidText, codeInvalidDatetime, codeDatetimeOverflow, codeNumericOutOfRange:
			return fmt.Errorf("%s: %w: %s", op, ErrInvalidInput, pqErr.Message)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireDB(db *sql.DB) error {
	if db == nil {
		return ErrNoDatabase
	}
	return nil
}

func rowsAffected(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
