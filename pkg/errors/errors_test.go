package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeCollectionNotFound, "%q is not a collection", "Projects")

	if got := err.Error(); !strings.Contains(got, "COLLECTION_NOT_FOUND") || !strings.Contains(got, `"Projects"`) {
		t.Errorf("Error() = %q", got)
	}
	if !Is(err, ErrCodeCollectionNotFound) {
		t.Error("Is() should match the code")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is() should not match a different code")
	}
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch item %s", "I1")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
	if GetCode(err) != ErrCodeNetwork {
		t.Errorf("GetCode() = %s, want NETWORK_ERROR", GetCode(err))
	}
	if got := err.Error(); !strings.Contains(got, "connection refused") {
		t.Errorf("Error() = %q, want cause included", got)
	}
}

func TestGetCodePlainError(t *testing.T) {
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode() = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeItemNotFound, "item I1 does not exist")
	if got := UserMessage(err); got != "item I1 does not exist" {
		t.Errorf("UserMessage() = %q", got)
	}

	plain := stderrors.New("plain failure")
	if got := UserMessage(plain); got != "plain failure" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestIsThroughWrapping(t *testing.T) {
	inner := New(ErrCodeUnauthorized, "access denied")
	outer := Wrap(ErrCodeNetwork, inner, "list collections")

	// As finds the outermost coded error.
	if GetCode(outer) != ErrCodeNetwork {
		t.Errorf("GetCode() = %s, want NETWORK_ERROR", GetCode(outer))
	}
}
