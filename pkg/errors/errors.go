// Copyright (c) 2026, the Metron authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeConfigInvalid indicates the run configuration is missing,
	// malformed, or fails its schema. No capture run is attempted.
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	// ErrCodeUnsupportedDatabase indicates a database type outside the
	// known collector variants. Raised before any I/O against the target.
	ErrCodeUnsupportedDatabase ErrorCode = "UNSUPPORTED_DATABASE"
	// ErrCodeConnectionFailed indicates the target database cannot be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeCollectionFailed indicates introspection queries failed or
	// returned unusable rows.
	ErrCodeCollectionFailed ErrorCode = "COLLECTION_FAILED"
	// ErrCodeSchemaInvalid indicates an artifact document failed validation
	// against the schema for its kind.
	ErrCodeSchemaInvalid ErrorCode = "SCHEMA_INVALID"
	// ErrCodeIOFailed indicates an artifact could not be written to disk.
	ErrCodeIOFailed ErrorCode = "IO_FAILED"
	// ErrCodeInterrupted indicates the observation wait was interrupted.
	ErrCodeInterrupted ErrorCode = "INTERRUPTED"
	// ErrCodeUploadFailed indicates the artifact set could not be delivered
	// to the upload endpoint.
	ErrCodeUploadFailed ErrorCode = "UPLOAD_FAILED"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the ErrorCode carried by err, unwrapping as needed.
// Errors without a StructuredError in their chain report ErrCodeInternal.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}
