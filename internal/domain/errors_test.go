package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_UnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("save blog: %w", NewValidationError("name", "must not be blank"))
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if len(ve.Violations) != 1 || ve.Violations[0].Field != "name" {
		t.Errorf("unexpected violations: %+v", ve.Violations)
	}
}

func TestValidationError_MessageListsEveryField(t *testing.T) {
	ve := &ValidationError{}
	ve.Add("author", "must not be blank")
	ve.Add("content", "must not be blank")

	want := "validation failed: author: must not be blank; content: must not be blank"
	if ve.Error() != want {
		t.Errorf("Error() = %q, want %q", ve.Error(), want)
	}
}

func TestValidationError_OrNil(t *testing.T) {
	var nilErr *ValidationError
	if nilErr.OrNil() != nil {
		t.Error("nil receiver should yield nil error")
	}
	if (&ValidationError{}).OrNil() != nil {
		t.Error("empty violations should yield nil error")
	}
	ve := &ValidationError{}
	ve.Add("id", "bad")
	if ve.OrNil() == nil {
		t.Error("expected non-nil error")
	}
}
