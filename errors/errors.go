/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrFetch is returned when a posture source cannot be retrieved
	ErrFetch = errors.New("fetch failed")

	// ErrParse is returned when a posture source is not a JSON object
	ErrParse = errors.New("parse failed")

	// ErrWrite is returned when the document store rejects an upsert
	ErrWrite = errors.New("write failed")

	// ErrNotFound is returned when a document is not found
	ErrNotFound = errors.New("document not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// FetchError represents a failure to retrieve a source location
type FetchError struct {
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %q: %v", e.Location, e.Err)
}

func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ParseError represents a source body that is not valid JSON or not an object
type ParseError struct {
	Location string
	Reason   string
	Err      error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse %q: %s", e.Location, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError represents an upsert rejected by the document store
type WriteError struct {
	Collection string
	DocumentID string
	Err        error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s/%s: %v", e.Collection, e.DocumentID, e.Err)
}

func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// NotFoundError represents an error when a document is not found
type NotFoundError struct {
	Collection string
	DocumentID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Collection, e.DocumentID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewFetchError creates a new FetchError
func NewFetchError(location string, err error) error {
	return &FetchError{Location: location, Err: err}
}

// NewParseError creates a new ParseError
func NewParseError(location, reason string, err error) error {
	return &ParseError{Location: location, Reason: reason, Err: err}
}

// NewWriteError creates a new WriteError
func NewWriteError(collection, documentID string, err error) error {
	return &WriteError{Collection: collection, DocumentID: documentID, Err: err}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(collection, documentID string) error {
	return &NotFoundError{Collection: collection, DocumentID: documentID}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsFetchError checks if an error is a fetch error
func IsFetchError(err error) bool {
	return errors.Is(err, ErrFetch)
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsWriteError checks if an error is a write error
func IsWriteError(err error) bool {
	return errors.Is(err, ErrWrite)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsImportError reports whether err is one of the failures that abort an import.
func IsImportError(err error) bool {
	return IsFetchError(err) || IsParseError(err) || IsWriteError(err)
}
