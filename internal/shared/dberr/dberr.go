// Package dberr classifies storage errors coming out of gorm so services can
// map them onto domain errors without knowing the driver.
package dberr

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
	codeUndefinedTable     = "42P01"
	classConnection        = "08"
)

// IsUniqueViolation reports a duplicate key. When constraint names are given
// the postgres error must come from one of them; translated or non-postgres
// duplicates always match.
func IsUniqueViolation(err error, constraints ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation && matchConstraint(pgErr, constraints)
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

func IsExclusionViolation(err error, constraints ...string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeExclusionViolation && matchConstraint(pgErr, constraints)
	}
	return false
}

// IsStorageUnavailable is true for errors that mean the store cannot answer at
// all: connection failures and missing tables.
func IsStorageUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUndefinedTable || strings.HasPrefix(pgErr.Code, classConnection)
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no such table") ||
		strings.Contains(msg, "sql: database is closed")
}

func matchConstraint(pgErr *pgconn.PgError, constraints []string) bool {
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}
