// errors.go: structured error types for sinter's boundary-validation API
//
// SPDX-License-Identifier: MIT
package sinter

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes for sinter operations.
const (
	// Input validation errors
	ErrCodeInvalidUTF8    errors.ErrorCode = "SINTER_INVALID_UTF8"
	ErrCodeEmbeddedNUL    errors.ErrorCode = "SINTER_EMBEDDED_NUL"
	ErrCodeMissingNUL     errors.ErrorCode = "SINTER_MISSING_NUL"
	ErrCodeStringTooLarge errors.ErrorCode = "SINTER_STRING_TOO_LARGE"

	// Configuration errors
	ErrCodeInvalidConfig errors.ErrorCode = "SINTER_INVALID_CONFIG"

	// Internal errors
	ErrCodeInternalError errors.ErrorCode = "SINTER_INTERNAL_ERROR"
)

const (
	msgInvalidUTF8    = "input is not valid UTF-8"
	msgEmbeddedNUL    = "input contains an embedded NUL byte"
	msgMissingNUL     = "C string is missing its trailing NUL terminator"
	msgStringTooLarge = "string exceeds the maximum interned record size"
	msgInvalidConfig  = "invalid hot-reload configuration value"
	msgInternalError  = "internal interner error"
)

// NewErrInvalidUTF8 reports that a []byte passed to InternBytes (or
// similar) is not valid UTF-8.
func NewErrInvalidUTF8(length int) error {
	return errors.NewWithContext(ErrCodeInvalidUTF8, msgInvalidUTF8, map[string]interface{}{
		"byte_length": length,
	})
}

// NewErrEmbeddedNUL reports that a string intended for CString-style
// interning contains a NUL byte before its end.
func NewErrEmbeddedNUL(offset int) error {
	return errors.NewWithField(ErrCodeEmbeddedNUL, msgEmbeddedNUL, "offset", offset)
}

// NewErrMissingNUL reports that InternCBytes was given a slice that
// doesn't end in a NUL byte.
func NewErrMissingNUL(length int) error {
	return errors.NewWithField(ErrCodeMissingNUL, msgMissingNUL, "byte_length", length)
}

// NewErrStringTooLarge reports that a string is too large for a single
// arena record to address.
func NewErrStringTooLarge(length, max int) error {
	return errors.NewWithContext(ErrCodeStringTooLarge, msgStringTooLarge, map[string]interface{}{
		"byte_length": length,
		"maximum":     max,
	})
}

// NewErrInvalidConfig reports a bad value observed while applying a
// hot-reloaded configuration field.
func NewErrInvalidConfig(field string, value interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidConfig, msgInvalidConfig, map[string]interface{}{
		"field": field,
		"value": value,
	})
}

// NewErrInternal wraps an unexpected internal failure, marked as a
// warning since by construction it should never surface to a caller who
// only uses the public API correctly.
func NewErrInternal(operation string, cause error) error {
	return errors.Wrap(cause, ErrCodeInternalError, msgInternalError).
		WithContext("operation", operation).
		WithSeverity("warning")
}

// IsInvalidUTF8 reports whether err is a NewErrInvalidUTF8 error.
func IsInvalidUTF8(err error) bool {
	return errors.HasCode(err, ErrCodeInvalidUTF8)
}

// IsEmbeddedNUL reports whether err is a NewErrEmbeddedNUL error.
func IsEmbeddedNUL(err error) bool {
	return errors.HasCode(err, ErrCodeEmbeddedNUL)
}

// IsMissingNUL reports whether err is a NewErrMissingNUL error.
func IsMissingNUL(err error) bool {
	return errors.HasCode(err, ErrCodeMissingNUL)
}

// GetErrorCode extracts the error code carried by err, if any.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts the structured context carried by err, if any.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var sinterErr *errors.Error
	if goerrors.As(err, &sinterErr) {
		return sinterErr.Context
	}
	return nil
}
