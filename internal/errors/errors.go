package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeInvalidArgument indicates client specified an invalid argument
	// (malformed dice expression, non-positive movement, unknown action kind)
	CodeInvalidArgument Code = "invalid_argument"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeAlreadyExists indicates an attempt to create a resource that already exists
	CodeAlreadyExists Code = "already_exists"

	// CodeFailedPrecondition indicates an illegal state transition, such as
	// acting out of turn or consuming an already used budget
	CodeFailedPrecondition Code = "failed_precondition"

	// CodeRulesViolation indicates the action breaks a game rule, such as
	// casting a spell the caster has not prepared
	CodeRulesViolation Code = "rules_violation"

	// CodePermissionDenied indicates the caller does not have permission
	CodePermissionDenied Code = "permission_denied"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"

	// CodeUnavailable indicates the service is currently unavailable
	CodeUnavailable Code = "unavailable"

	// CodeAborted indicates a concurrent writer won an optimistic update
	CodeAborted Code = "aborted"
)

// Well known meta keys
const (
	MetaCombatID     = "combat_id"
	MetaFighterID    = "fighter_id"
	MetaBudget       = "budget"
	MetaPrerequisite = "prerequisite"
	MetaExpression   = "expression"
)

// Error represents an application error with code and metadata
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error

	// Meta contains additional context
	Meta map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return &Error{
			Code:    dndErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(dndErr.Meta),
		}
	}

	// Otherwise, create unknown error
	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// InvalidExpression creates an invalid argument error for a dice expression
func InvalidExpression(expression, reason string) *Error {
	return Newf(CodeInvalidArgument, "invalid dice expression %q: %s", expression, reason).
		WithMeta(MetaExpression, expression)
}

// AlreadyExistsf creates a formatted already exists error
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// IllegalState creates a failed precondition error
func IllegalState(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

// IllegalStatef creates a formatted failed precondition error
func IllegalStatef(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// NotYourTurn is returned when a fighter acts outside of their turn
func NotYourTurn(fighterID string) *Error {
	return IllegalStatef("it is not %s's turn", fighterID).WithMeta(MetaFighterID, fighterID)
}

// ActionAlreadyUsed is returned when a turn budget was already consumed
func ActionAlreadyUsed(budget string) *Error {
	return IllegalStatef("%s already used this turn", budget).WithMeta(MetaBudget, budget)
}

// CombatNotActive is returned when acting on a combat that is not active
func CombatNotActive(combatID string) *Error {
	return IllegalStatef("combat %s is not active", combatID).WithMeta(MetaCombatID, combatID)
}

// RulesViolation creates a rules violation error naming the missing prerequisite
func RulesViolation(prerequisite, message string) *Error {
	return New(CodeRulesViolation, message).WithMeta(MetaPrerequisite, prerequisite)
}

// RulesViolationf creates a formatted rules violation error
func RulesViolationf(prerequisite, format string, args ...any) *Error {
	return Newf(CodeRulesViolation, format, args...).WithMeta(MetaPrerequisite, prerequisite)
}

// PermissionDenied creates a permission denied error
func PermissionDenied(message string) *Error {
	return New(CodePermissionDenied, message)
}

// Unavailable wraps an infrastructure failure
func Unavailable(err error, message string) *Error {
	return WrapWithCode(err, CodeUnavailable, message)
}

// Aborted creates an optimistic concurrency conflict error
func Aborted(message string) *Error {
	return New(CodeAborted, message)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsAlreadyExists checks if the error is an already exists error
func IsAlreadyExists(err error) bool {
	return Is(err, CodeAlreadyExists)
}

// IsIllegalState checks if the error is a failed precondition error
func IsIllegalState(err error) bool {
	return Is(err, CodeFailedPrecondition)
}

// IsRulesViolation checks if the error is a rules violation
func IsRulesViolation(err error) bool {
	return Is(err, CodeRulesViolation)
}

// IsAborted checks if the error is an optimistic concurrency conflict
func IsAborted(err error) bool {
	return Is(err, CodeAborted)
}

// IsRejection reports whether err is recoverable at the action boundary:
// the action is rejected and the encounter carries on.
func IsRejection(err error) bool {
	switch GetCode(err) {
	case CodeInvalidArgument, CodeNotFound, CodeFailedPrecondition, CodeRulesViolation, CodePermissionDenied:
		return true
	default:
		return false
	}
}

// GetCode returns the error code
func GetCode(err error) Code {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var dndErr *Error
	if errors.As(err, &dndErr) {
		return dndErr.Meta
	}
	return nil
}

// copyMeta creates a copy of the metadata map
func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
