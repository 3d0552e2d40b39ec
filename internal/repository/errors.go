package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNumberTaken means another writer already holds the generated
	// document number; the caller should derive a new one and retry.
	ErrNumberTaken = errors.New("document number already taken")
	ErrDuplicate   = errors.New("duplicate value")
	ErrReferenced  = errors.New("record is referenced by other records")
	// ErrStaleStatus means a conditional write found the record in another
	// status than the one it was read in.
	ErrStaleStatus = errors.New("record status changed")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgUniqueViolation:
		if strings.HasSuffix(pgErr.ConstraintName, "_number") {
			return fmt.Errorf("%w (%s)", ErrNumberTaken, pgErr.ConstraintName)
		}
		return fmt.Errorf("%w (%s)", ErrDuplicate, pgErr.ConstraintName)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w (%s)", ErrReferenced, pgErr.ConstraintName)
	}
	return err
}
