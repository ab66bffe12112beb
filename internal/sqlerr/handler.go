package sqlerr

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/maprangsoft/crudapi/internal/errs"
	"github.com/maprangsoft/crudapi/internal/i18n"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/puddle/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	uniqueConstraintRe = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	fkConstraintRe     = regexp.MustCompile(`^[^_]+_(.+)_id_fkey$`)
)

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
//
// pgconn.PgError contains Postgres-specific fields like:
//   - Code (SQLSTATE)
//   - Severity
//   - TableName/ColumnName/ConstraintName etc.
//
// We map SQLSTATE + Severity into our enums for easier switching.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),         // map SQLSTATE to friendly code enum
		Severity:       MapSeverity(src.Severity), // map severity string to enum
		DatabaseCode:   src.Code,                  // keep original SQLSTATE
		Message:        src.Message,               // DB's main message
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src, // store original for Unwrap() and debugging
	}
}

// getEntityName tries to infer an entity name from table/column data.
//
// Priority rules:
//  1. If column ends with "_id", use that base name. (Best for FK relations)
//     e.g. "user_id" -> "User"
//  2. Otherwise use table name, singularized if it ends with "s".
//  3. Otherwise fallback to "record".
func getEntityName(tableName, columnName string) string {
	// Most reliable for foreign keys: column like "user_id".
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	// Fallback: table name.
	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case (or lower-ish identifiers) into Title Case.
//
// Example:
//
//	"first_name" -> "First Name"
//
// It uses x/text/cases for proper title casing rules.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation tries to infer the column name from a unique constraint name.
//
// It supports two conventions:
//
//  1. "unique_<table>_<column>"
//     Example: unique_users_email -> "email"
//
//  2. "<table>_<column>_(key|ukey)"
//     Example: users_email_key -> "email"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	// Convention 1: unique_table_column
	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		// Need at least: ["unique", "<table>", "<column>"]
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	// Convention 2: table_column_key or table_column_ukey
	matches := uniqueConstraintRe.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// Translate classifies a store error into an *errs.HTTPError.
//
// Classification:
//   - unique violation             -> 409 CONFLICT (with the offending field when known)
//   - foreign key violation        -> 404 NOT_FOUND ("referenced <entity> not found")
//   - not-null, check, class 22    -> 400 VALIDATION_ERROR
//   - any other Postgres error     -> 500 DATABASE_ERROR
//   - pgx.ErrNoRows / sql.ErrNoRows -> 404 NOT_FOUND
//   - connection failures, timeouts -> 500 DATABASE_ERROR
//
// It returns nil when err is not a store error, so callers can fall through
// to their own handling.
func Translate(err error) *errs.HTTPError {
	if err == nil {
		return nil
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		switch sqlErr.Code {
		case UniqueViolation:
			conflict := errs.NewConflictError("", nil)
			if column := extractColumnForUniqueViolation(sqlErr.ConstraintName); column != "" {
				conflict = conflict.WithField(column, "already exists")
			}
			return conflict

		case ForeignKeyViolation:
			entity := getEntityName(sqlErr.TableName, sqlErr.ColumnName)
			if sqlErr.ColumnName == "" {
				entity = entityFromConstraint(sqlErr.ConstraintName)
			}
			return errs.NewNotFoundError(i18n.ErrReferencedNotFound, map[string]any{"Entity": strings.ToLower(entity)})

		case NotNullViolation:
			validation := errs.NewValidationError("", nil)
			if sqlErr.ColumnName != "" {
				validation = validation.WithField(strings.ToLower(sqlErr.ColumnName), "is required")
			}
			return validation

		case CheckViolation, DataException:
			return errs.NewValidationError("", nil)

		default:
			return errs.NewDatabaseError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("", nil)
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || pgconn.Timeout(err) || isClosedPool(err) {
		return errs.NewDatabaseError()
	}

	return nil
}

// entityFromConstraint reads the referencing column out of a Postgres
// default FK constraint name ("blogs_author_id_fkey" -> "author").
func entityFromConstraint(constraintName string) string {
	matches := fkConstraintRe.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return humanizeText(matches[1])
	}
	return "record"
}

func isClosedPool(err error) bool {
	return errors.Is(err, puddle.ErrClosedPool)
}
