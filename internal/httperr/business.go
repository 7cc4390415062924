package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

type BusinessError struct {
	Code    string
	Details map[string]any
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// ErrBusinessDetails attaches the computed boundary values that caused
// the rejection (e.g. the effective availability window).
func ErrBusinessDetails(code string, details map[string]any) error {
	return BusinessError{Code: code, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessDetails(err error) map[string]any {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Details
	}
	return nil
}

// IsExclusionConflict reports whether a Postgres write was rejected by
// the no-overlap exclusion constraint (or a unique index race). The
// application-level conflict check runs first; this catches the ones
// that slip between check and insert.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
