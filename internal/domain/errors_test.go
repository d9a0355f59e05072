package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	err := &APIError{Kind: ErrNotFound, StatusCode: 404, Message: "resource not found: /api/x"}
	if !IsNotFound(err) {
		t.Error("IsNotFound should match classified 404")
	}
	if IsUnauthorized(err) {
		t.Error("IsUnauthorized should not match a 404")
	}

	wrapped := fmt.Errorf("get workspace: %w", err)
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should match through wrapping")
	}
}

func TestIsUnauthorized(t *testing.T) {
	for _, code := range []int{401, 403} {
		err := &APIError{Kind: ErrUnauthorized, StatusCode: code, Message: "unauthorized"}
		if !IsUnauthorized(err) {
			t.Errorf("IsUnauthorized should match status %d", code)
		}
	}
}

func TestIsTransport(t *testing.T) {
	raw := errors.New("dial tcp 127.0.0.1:8090: connect: connection refused")
	err := &TransportError{Op: "GET /api/deploy/clusters", Err: raw}

	if !IsTransport(err) {
		t.Error("IsTransport should match TransportError")
	}
	if IsTransport(&APIError{Kind: ErrGeneric, StatusCode: 500, Message: "boom"}) {
		t.Error("IsTransport should not match an HTTP-level error")
	}
	if !errors.Is(err, raw) {
		t.Error("Unwrap should expose the underlying error")
	}
}

func TestIsDecode(t *testing.T) {
	err := &DecodeError{Op: "GET /api/health", Err: errors.New("invalid character '<'")}
	if !IsDecode(err) {
		t.Error("IsDecode should match DecodeError")
	}
	if IsTransport(err) {
		t.Error("decode failures are not transport failures")
	}
}

func TestErrKindString(t *testing.T) {
	tests := []struct {
		kind ErrKind
		want string
	}{
		{ErrNotFound, "not found"},
		{ErrUnauthorized, "unauthorized"},
		{ErrGeneric, "api error"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
