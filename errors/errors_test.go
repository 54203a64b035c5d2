/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("DataBag", "player-1")

	expected := `DataBag with key "player-1" not found`
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

func TestAlreadyExistsError(t *testing.T) {
	err := NewAlreadyExistsError("payload type", "IntData")

	expected := `payload type with key "IntData" already exists`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !IsAlreadyExists(err) {
		t.Error("IsAlreadyExists should return true for AlreadyExistsError")
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		message  string
		expected string
	}{
		{
			name:     "with field",
			field:    "payloadTypeId",
			message:  "required",
			expected: `validation failed for field "payloadTypeId": required`,
		},
		{
			name:     "without field",
			field:    "",
			message:  "index 3 out of range",
			expected: "validation failed: index 3 out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)

			if err.Error() != tt.expected {
				t.Errorf("Expected error message %q, got %q", tt.expected, err.Error())
			}

			if !IsValidationError(err) {
				t.Error("IsValidationError should return true for ValidationError")
			}
		})
	}
}

func TestUnknownTypeError(t *testing.T) {
	err := NewUnknownTypeError("QuaternionData")

	expected := `unknown payload type "QuaternionData"`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}
	if !IsUnknownType(err) {
		t.Error("IsUnknownType should return true for UnknownTypeError")
	}

	empty := NewUnknownTypeError("")
	if empty.Error() != "unknown payload type: empty type id" {
		t.Errorf("Unexpected message for empty id: %q", empty.Error())
	}
}

func TestErrorWrapping(t *testing.T) {
	original := NewUnknownTypeError("Gone")
	wrapped := fmt.Errorf("entry 2: %w", original)

	if !IsUnknownType(wrapped) {
		t.Error("IsUnknownType should work with wrapped errors")
	}

	var ute *UnknownTypeError
	if !errors.As(wrapped, &ute) || ute.TypeID != "Gone" {
		t.Errorf("errors.As should recover the type id, got %+v", ute)
	}
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNotFound,
		ErrAlreadyExists,
		ErrInvalidInput,
		ErrUnknownType,
	}

	for i, err1 := range sentinels {
		for j, err2 := range sentinels {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("Sentinel errors should be distinct: %v matches %v", err1, err2)
			}
		}
	}
}
