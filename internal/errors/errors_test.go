package errors

import (
	"fmt"
	"testing"
)

func TestValidationErrorFirstMessageWins(t *testing.T) {
	verr := NewValidationError()
	verr.Add("ownerName", "must not be blank")
	verr.Add("ownerName", "second message")

	if verr.Fields["ownerName"] != "must not be blank" {
		t.Fatalf("fields=%v want first message kept", verr.Fields)
	}
}

func TestValidationErrorMessageIsDeterministic(t *testing.T) {
	verr := NewValidationError()
	verr.Add("ownerName", "must not be blank")
	verr.Add("email", "must be a valid email address")

	want := "validation failed: email: must be a valid email address; ownerName: must not be blank"
	for i := 0; i < 10; i++ {
		if got := verr.Error(); got != want {
			t.Fatalf("Error()=%q want=%q", got, want)
		}
	}
}

func TestIsValidationErrorSeesWrappedErrors(t *testing.T) {
	verr := NewValidationError()
	verr.Add("email", "must be a valid email address")
	wrapped := fmt.Errorf("create account: %w", verr)

	if !IsValidationError(wrapped) {
		t.Fatal("wrapped validation error not recognized")
	}
	if IsValidationError(ErrAccountNotFound) {
		t.Fatal("not-found misclassified as validation error")
	}
}

func TestNotFoundClassification(t *testing.T) {
	wrapped := fmt.Errorf("load account: %w", ErrAccountNotFound)
	if !IsNotFound(wrapped) {
		t.Fatal("wrapped not-found not recognized")
	}
	if IsNotFound(ErrDuplicateAccountNumber) {
		t.Fatal("duplicate misclassified as not-found")
	}
}
