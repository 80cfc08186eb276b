/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("User", "123")

	// Test error message
	expected := `User with key "123" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestInvalidArgumentError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "created_at",
			message:  "must not be null",
			expected: `invalid argument "created_at": must not be null`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "save takes no arguments",
			expected: "invalid argument: save takes no arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewInvalidArgumentError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !errors.Is(err, ErrInvalidArgument) {
				t.Error("InvalidArgumentError should match ErrInvalidArgument")
			}

			if !IsInvalidArgument(err) {
				t.Error("IsInvalidArgument should return true for InvalidArgumentError")
			}
		})
	}
}

func TestUnknownTypeError(t *testing.T) {
	err := NewUnknownTypeError("Spaceship", "Spaceship.42")

	expected := `unknown type "Spaceship" for record "Spaceship.42"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsUnknownType(err) {
		t.Error("IsUnknownType should return true for UnknownTypeError")
	}

	bare := NewUnknownTypeError("Spaceship", "")
	if bare.Error() != `unknown type "Spaceship"` {
		t.Errorf("Unexpected message without key: %q", bare.Error())
	}
}

func TestMalformedStoreError(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	err := NewMalformedStoreError("file.json", "invalid JSON", cause)

	expected := `malformed store "file.json": invalid JSON: unexpected end of JSON input`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsMalformedStore(err) {
		t.Error("IsMalformedStore should return true for MalformedStoreError")
	}

	if !errors.Is(err, cause) {
		t.Error("MalformedStoreError should unwrap to its cause")
	}
}

func TestIOFailureError(t *testing.T) {
	err := NewIOFailureError("read", "file.json", fs.ErrPermission)

	if !IsIOFailure(err) {
		t.Error("IsIOFailure should return true for IOFailureError")
	}

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("IOFailureError should unwrap to fs.ErrPermission")
	}
}

func TestErrorWrapping(t *testing.T) {
	// Test that wrapped errors still match
	original := NewUnknownTypeError("Spaceship", "Spaceship.1")
	wrapped := fmt.Errorf("reload failed: %w", original)

	if !errors.Is(wrapped, ErrUnknownType) {
		t.Error("Wrapped UnknownTypeError should still match ErrUnknownType")
	}

	if !IsUnknownType(wrapped) {
		t.Error("IsUnknownType should work with wrapped errors")
	}
}

func TestIsUserError(t *testing.T) {
	if !IsUserError(NewInvalidArgumentError("", "x")) {
		t.Error("InvalidArgument should be a user error")
	}
	if !IsUserError(NewMalformedStoreError("f", "bad", nil)) {
		t.Error("MalformedStore should be a user error")
	}
	if IsUserError(NewIOFailureError("write", "f", fs.ErrPermission)) {
		t.Error("IOFailure should not be a user error")
	}
}

func TestSentinelErrors(t *testing.T) {
	// Ensure sentinel errors are distinct
	sentinels := []error{
		ErrNotFound,
		ErrInvalidArgument,
		ErrUnknownType,
		ErrMalformedStore,
		ErrIOFailure,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
