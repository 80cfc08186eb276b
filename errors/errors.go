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
	// ErrNotFound is returned when an object or a backing document is not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument is returned for bad call-site usage or malformed reconstruction input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownType is returned when a type tag has no registered constructor
	ErrUnknownType = errors.New("unknown type")

	// ErrMalformedStore is returned when a backing document does not have the expected shape
	ErrMalformedStore = errors.New("malformed store")

	// ErrIOFailure is returned when the backing storage cannot be read or written
	ErrIOFailure = errors.New("i/o failure")
)

// NotFoundError represents an error when an object is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidArgumentError represents an argument validation error
type InvalidArgumentError struct {
	Field   string
	Message string
}

func (e *InvalidArgumentError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// UnknownTypeError represents a type tag with no registered constructor
type UnknownTypeError struct {
	Type string
	Key  string
}

func (e *UnknownTypeError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("unknown type %q for record %q", e.Type, e.Key)
	}
	return fmt.Sprintf("unknown type %q", e.Type)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// MalformedStoreError represents a backing document that cannot be decoded
type MalformedStoreError struct {
	Location string
	Reason   string
	Err      error
}

func (e *MalformedStoreError) Error() string {
	msg := fmt.Sprintf("malformed store %q: %s", e.Location, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedStoreError) Is(target error) bool {
	return target == ErrMalformedStore
}

func (e *MalformedStoreError) Unwrap() error {
	return e.Err
}

// IOFailureError represents a failed read or write of the backing storage
type IOFailureError struct {
	Op       string
	Location string
	Err      error
}

func (e *IOFailureError) Error() string {
	return fmt.Sprintf("%s %q failed: %v", e.Op, e.Location, e.Err)
}

func (e *IOFailureError) Is(target error) bool {
	return target == ErrIOFailure
}

func (e *IOFailureError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(objectType, key string) error {
	return &NotFoundError{Type: objectType, Key: key}
}

// NewInvalidArgumentError creates a new InvalidArgumentError
func NewInvalidArgumentError(field, message string) error {
	return &InvalidArgumentError{Field: field, Message: message}
}

// NewUnknownTypeError creates a new UnknownTypeError
func NewUnknownTypeError(typeName, key string) error {
	return &UnknownTypeError{Type: typeName, Key: key}
}

// NewMalformedStoreError creates a new MalformedStoreError
func NewMalformedStoreError(location, reason string, err error) error {
	return &MalformedStoreError{Location: location, Reason: reason, Err: err}
}

// NewIOFailureError creates a new IOFailureError
func NewIOFailureError(op, location string, err error) error {
	return &IOFailureError{Op: op, Location: location, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsUnknownType checks if an error is an unknown type error
func IsUnknownType(err error) bool {
	return errors.Is(err, ErrUnknownType)
}

// IsMalformedStore checks if an error is a malformed store error
func IsMalformedStore(err error) bool {
	return errors.Is(err, ErrMalformedStore)
}

// IsIOFailure checks if an error is an i/o failure
func IsIOFailure(err error) bool {
	return errors.Is(err, ErrIOFailure)
}

// IsUserError reports whether err is one of the kinds a command layer reports
// to the user instead of propagating as a crash.
func IsUserError(err error) bool {
	return IsInvalidArgument(err) || IsUnknownType(err) || IsMalformedStore(err) || IsNotFound(err)
}
