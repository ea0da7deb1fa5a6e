// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the PostgreSQL and SQLite drivers and
// converts them into user-friendly messages (e.g., converting a "check
// constraint violation" into a "Bad Request" error).
package sqlerr

import "fmt"

// Code is a driver independent classification of a database error.
type Code string

const (
	Other               Code = "other"
	NotNullViolation    Code = "not_null_violation"
	ForeignKeyViolation Code = "foreign_key_violation"
	UniqueViolation     Code = "unique_violation"
	CheckViolation      Code = "check_violation"
	Busy                Code = "busy"
)

// Severity mirrors the PostgreSQL severity levels. SQLite errors are always
// SeverityError.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a normalized database error.
type Error struct {
	Code     Code
	Severity Severity

	// DatabaseCode is the raw driver code: the SQLSTATE for PostgreSQL or the
	// extended result code for SQLite.
	DatabaseCode string
	Message      string

	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Severity, e.Message, e.DatabaseCode)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a PostgreSQL SQLSTATE onto a Code.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "55P03", "40P01":
		return Busy
	default:
		return Other
	}
}

// MapSeverity maps a PostgreSQL severity string onto a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice,
		SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
