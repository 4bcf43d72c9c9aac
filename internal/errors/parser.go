package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a parsed error: a stable code plus a safe display message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and infrastructure errors into user-safe
// codes. Sensitive detail stays out of the message; the raw error belongs in
// the logs, not the response.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// GORM
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}

	// PostgreSQL constraint classes

	// unique_violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStrLower)
	}

	// foreign_key_violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "The record is referenced by other data and cannot be changed",
		}
	}

	// not_null_violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
	}

	// check_violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidRange, Message: "A field value is out of range"}
	}

	// connectivity
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unreachable. Please try again later",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(context)}
}

func parseDuplicateKeyError(errLower string) ErrorInfo {
	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "That email is already registered"}
	}
	if strings.Contains(errLower, "order_number") {
		return ErrorInfo{Code: ResourceAlreadyExists, Message: "Order number collision, please retry"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "A record with those values already exists"}
}

func notFoundMessage(context string) string {
	switch context {
	case "product":
		return "Product not found"
	case "option_group":
		return "Option group not found"
	case "option":
		return "Option not found"
	case "variant":
		return "Variant not found"
	case "order":
		return "Order not found"
	case "driver":
		return "Driver not found"
	case "user":
		return "User not found"
	default:
		return "Not found"
	}
}

func defaultMessage(context string) string {
	if context == "" {
		return "Something went wrong. Please try again later"
	}
	return "Failed to process " + context + ". Please try again later"
}
