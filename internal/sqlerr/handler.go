package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/deppfellow/produce-api/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// users_email_key, users_email_ukey
	uniqueKeyPattern = regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)

	// "NOT NULL constraint failed: produce.name"
	sqliteTargetPattern = regexp.MustCompile(`constraint failed: ([A-Za-z0-9_]+)\.([A-Za-z0-9_]+)`)

	// "CHECK constraint failed: price_per_kg >= 0"
	sqliteCheckPattern = regexp.MustCompile(`CHECK constraint failed: ([A-Za-z0-9_]+)`)
)

// ErrCode classifies err, which may wrap a raw pgx or sqlite driver error,
// and reports its Code. Non-database errors report Other.
func ErrCode(err error) Code {
	if sqlErr, ok := classify(err); ok {
		return sqlErr.Code
	}
	return Other
}

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// ConvertSQLiteError converts a modernc sqlite error into an *Error.
//
// SQLite only reports the offending table and column inside the message, so
// they are recovered from there when possible.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	msg := src.Error()
	code := mapSQLiteCode(src.Code())
	if code == Other && src.Code() == sqlite3.SQLITE_CONSTRAINT {
		code = constraintFromMessage(msg)
	}

	out := &Error{
		Code:         code,
		Severity:     SeverityError,
		DatabaseCode: strconv.Itoa(src.Code()),
		Message:      msg,
		driverErr:    src,
	}

	if m := sqliteTargetPattern.FindStringSubmatch(msg); len(m) == 3 {
		out.TableName = m[1]
		out.ColumnName = m[2]
	} else if m := sqliteCheckPattern.FindStringSubmatch(msg); len(m) == 2 {
		out.ColumnName = m[1]
	}

	return out
}

func mapSQLiteCode(code int) Code {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return CheckViolation
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Busy
	}

	// Extended codes keep the primary code in the low byte.
	switch code & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return Busy
	}
	return Other
}

// constraintFromMessage classifies a constraint error that carries only the
// primary result code.
func constraintFromMessage(msg string) Code {
	switch {
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return NotNullViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ForeignKeyViolation
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return UniqueViolation
	case strings.Contains(msg, "CHECK constraint failed"):
		return CheckViolation
	}
	return Other
}

// generateErrorCode builds a machine readable code such as
// PRODUCE_INVALID from the table name and the violation type.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName prefers a foreign key column ("user_id" -> "User"), then the
// singularized table name, then "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText turns "price_per_kg" into "Price Per Kg".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the column from a Postgres unique
// constraint name, either unique_<table>_<column> or <table>_<column>_key.
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	if matches := uniqueKeyPattern.FindStringSubmatch(constraintName); len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// classify extracts a normalized *Error from either driver.
func classify(err error) (*Error, bool) {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return ConvertPgError(pgErr), true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr), true
	}

	return nil, false
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - constraint violations: 400 with a friendly message
//   - lock contention: 503
//   - ErrNoRows: 404
//   - anything else: 500 carrying the error message
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	if sqlErr, ok := classify(err); ok {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil, nil)

		case UniqueViolation:
			columnName := sqlErr.ColumnName
			if columnName == "" {
				columnName = extractColumnForUniqueViolation(sqlErr.ConstraintName)
			}
			if columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors, nil)

		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil, nil)

		case Busy:
			return errs.NewServiceUnavailableError("The database is busy, please retry")
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError().WithMessage(err.Error())
}
