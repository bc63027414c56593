package errors

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Regular expressions for parsing PgError.Detail messages.
var (
	// reKeyField extracts field name from unique violation detail: "Key (field)=(value) already exists.".
	reKeyField = regexp.MustCompile(`Key \(([^)]+)\)=`)
	// reNotPresent detects missing parent: "... is not present in table ...".
	reNotPresent = regexp.MustCompile(`is not present in table "?([^"]+)"?`)
)

// MapDBError maps database errors to AppError instances:
//   - pgx.ErrNoRows → NotFound
//   - unique constraint violations → Conflict
//   - foreign key violations → ForeignKey
//   - check and NOT NULL violations → Validation
//   - context timeouts/cancellations → Timeout/Canceled
//
// Unrecognized errors come back unchanged so callers can still wrap them.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &AppError{
			Code:    ErrCodeTimeout,
			Message: "Request timed out. Please try again.",
			Cause:   err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &AppError{
			Code:    ErrCodeCanceled,
			Message: "Request was canceled.",
			Cause:   err,
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return &AppError{
			Code:    ErrCodeNotFound,
			Message: "Resource not found",
			Cause:   err,
		}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return mapPgError(pgErr)
	}

	return err
}

// mapPgError maps PostgreSQL-specific errors to AppError instances.
func mapPgError(pgErr *pgconn.PgError) error {
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return mapUniqueViolation(pgErr)
	case pgerrcode.ForeignKeyViolation:
		return mapForeignKeyViolation(pgErr)
	case pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return mapConstraintViolation(pgErr)
	default:
		return &AppError{
			Code:    ErrCodeInternal,
			Message: "A database error occurred. Please try again.",
			Cause:   pgErr,
		}
	}
}

// mapUniqueViolation maps unique constraint violations to Conflict errors.
func mapUniqueViolation(pgErr *pgconn.PgError) error {
	var field string

	// ColumnName metadata is the most reliable source when present.
	if pgErr.ColumnName != "" {
		field = pgErr.ColumnName
	}

	// Fallback: parse Detail for "Key (field)=(value) already exists.", which
	// also covers multi-column constraints like (user_id, job_id).
	if field == "" && pgErr.Detail != "" {
		if m := reKeyField.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			field = m[1]
		}
	}

	message := uniqueViolationMessage(pgErr.ConstraintName)
	return &AppError{
		Code:    ErrCodeConflict,
		Message: message,
		Field:   field,
		Cause:   pgErr,
	}
}

// uniqueViolationMessage picks a domain message from the violated constraint.
func uniqueViolationMessage(constraintName string) string {
	name := strings.ToLower(constraintName)
	switch {
	case strings.Contains(name, "job_applications"):
		return "You have already applied for this job."
	case strings.Contains(name, "accounts") && strings.Contains(name, "email"):
		return "An account with this email already exists."
	default:
		return "This value already exists. Please choose a different one."
	}
}

// mapForeignKeyViolation maps foreign key constraint violations to ForeignKey errors.
func mapForeignKeyViolation(pgErr *pgconn.PgError) error {
	var message string

	// "... is not present in table X" means an insert referenced a missing parent.
	if pgErr.Detail != "" {
		if m := reNotPresent.FindStringSubmatch(pgErr.Detail); len(m) == 2 {
			message = "Cannot complete operation because the referenced " +
				tableToDomain(m[1]) + " does not exist."
		}
	}

	if message == "" && pgErr.TableName != "" {
		message = "Cannot complete operation because this " + tableToDomain(pgErr.TableName) + " is in use."
	}

	if message == "" {
		message = "Cannot complete operation because this item is in use."
	}

	return &AppError{
		Code:    ErrCodeForeignKey,
		Message: message,
		Cause:   pgErr,
	}
}

// mapConstraintViolation maps CHECK and NOT NULL violations to Validation errors.
func mapConstraintViolation(pgErr *pgconn.PgError) error {
	message := "Invalid data. Please check your input."
	if strings.Contains(strings.ToLower(pgErr.ConstraintName), "quantity") {
		message = "Job quantity cannot go below zero."
	}

	return &AppError{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   pgErr.ColumnName,
		Cause:   pgErr,
	}
}

// tableToDomain maps table names to user-facing domain names.
func tableToDomain(tableName string) string {
	switch strings.ToLower(strings.TrimSpace(tableName)) {
	case "accounts":
		return "account"
	case "jobs":
		return "job"
	case "job_applications":
		return "application"
	default:
		return strings.ReplaceAll(tableName, "_", " ")
	}
}
