package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/brandkit-api/internal/store"
)

// SQLSTATE codes the kit store translates.
const (
	checkViolationCode            = "23514"
	notNullViolationCode          = "23502"
	invalidTextRepresentationCode = "22P02" // e.g. a kit body jsonb rejects
)

// MapError translates database errors into store sentinels: a missing row
// becomes store.ErrKitNotFound and rejected kit rows become
// store.ErrInvalidEntity. Anything else is returned unchanged.
func MapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrKitNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	var detail string
	switch pgErr.Code {
	case checkViolationCode:
		detail = "kit row violates constraint " + pgErr.ConstraintName
	case notNullViolationCode:
		detail = "kit column " + pgErr.ColumnName + " cannot be null"
	case invalidTextRepresentationCode:
		detail = "kit value is not valid for its column"
	default:
		return err
	}
	return fmt.Errorf("%w: %s: %v", store.ErrInvalidEntity, detail, err)
}

// IsCheckConstraintViolation reports whether err is a check constraint
// violation, such as a kit body that is not a JSON object.
func IsCheckConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}
