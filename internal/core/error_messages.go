package core

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgMissingSource = UserMessage{
		Message: "Order file not found",
		Action:  "Check ORDERS_CSV or place the file at data/orders.csv",
		Code:    "SRC001",
	}
	msgMalformedRow = UserMessage{
		Message: "A row in the order file could not be read",
		Action:  "Fix the reported line and field, then load again",
		Code:    "ROW001",
	}
	msgMissingStore = UserMessage{
		Message: "Orders table does not exist",
		Action:  `Run "orders load" before "orders report"`,
		Code:    "STORE001",
	}
	msgEmptyDataset = UserMessage{
		Message: "There are no orders to summarize",
		Action:  "Load a file with at least one order row",
		Code:    "DATA001",
	}
)

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
// The first matching pattern wins, so more specific patterns come first.
var errorPatterns = []errorPattern{
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "An order with this ID already exists",
			Action:  "Remove the duplicate order_id from the file",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Check DATABASE_URL and that PostgreSQL is running",
			Code:    "DB002",
		},
	},
	{
		pattern: "connection reset",
		msg: UserMessage{
			Message: "Database connection was interrupted",
			Action:  "Please try again",
			Code:    "DB003",
		},
	},
	{
		pattern: "password authentication failed",
		msg: UserMessage{
			Message: "Database rejected the credentials",
			Action:  "Check the user and password in DATABASE_URL",
			Code:    "DB004",
		},
	},
	{
		pattern: "does not exist",
		msg: UserMessage{
			Message: "Database or role does not exist",
			Action:  "Check the database name in DATABASE_URL",
			Code:    "DB005",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Raise LOAD_TIMEOUT or REPORT_TIMEOUT, or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Raise LOAD_TIMEOUT or REPORT_TIMEOUT, or try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Order file exceeds maximum size limit (100MB)",
			Action:  "Split the file or archive older orders",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "Order file is not a valid CSV",
			Action:  "Ensure the file is comma-separated with consistent quoting",
			Code:    "FILE002",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logged error for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// Run errors are matched by type first; anything else falls back to
// message patterns and then to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var (
		missingSource *MissingSourceError
		malformed     *MalformedRowError
		missingStore  *MissingStoreError
		empty         *EmptyDatasetError
	)
	switch {
	case errors.As(err, &missingSource):
		return msgMissingSource
	case errors.As(err, &malformed):
		return msgMalformedRow
	case errors.As(err, &missingStore):
		return msgMissingStore
	case errors.As(err, &empty):
		return msgEmptyDataset
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing checks if an error matches a known type or pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
// Error() returns the user message; Unwrap() exposes the technical error.
type UserError struct {
	UserMessage
	Err error
}

func (e *UserError) Error() string {
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError from a technical error.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		UserMessage: MapError(err),
		Err:         err,
	}
}
