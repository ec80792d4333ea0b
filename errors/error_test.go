package errors

import "testing"

import (
	stderrors "errors"
	"strings"
)

func TestErrorfCarriesStack(t *testing.T) {
	err := Errorf("boom %v", 7)
	if !strings.Contains(err.Error(), "boom 7") {
		t.Fatalf("message lost: %v", err)
	}
	if !strings.Contains(err.Error(), "errors.TestErrorfCarriesStack") {
		t.Fatalf("stack lost: %v", err)
	}
}

func TestWrapfUnwraps(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := Wrapf(sentinel, "context %v", 42)
	if !stderrors.Is(err, sentinel) {
		t.Fatalf("expected errors.Is to reach the sentinel through %v", err)
	}
	if !strings.Contains(err.Error(), "context 42") {
		t.Fatalf("context lost: %v", err)
	}
}
