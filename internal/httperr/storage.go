package httperr

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint rejection
// from the database, translated by gorm or raw from the driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE "+pgUniqueViolation) ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// IsTransient reports whether err is a connectivity failure that is safe
// to retry. Business errors and constraint violations never are.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := KindOf(err); ok {
		return false
	}
	if IsUniqueViolation(err) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// serialization_failure, deadlock_detected, admin_shutdown, cannot_connect_now
		switch pgErr.Code {
		case "40001", "40P01", "57P01", "57P03":
			return true
		}
	}
	return false
}

// IsRetryableWrite is the narrower check for inserts. It only accepts
// failures where the statement provably never reached the server or was
// rolled back by it; a timeout may have committed, so it is excluded.
func IsRetryableWrite(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || pgconn.SafeToRetry(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return true
		}
	}
	return false
}
