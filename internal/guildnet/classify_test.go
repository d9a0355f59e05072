package guildnet

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/docxology/metaguildnet/internal/domain"
)

func TestClassify_Success(t *testing.T) {
	for _, status := range []int{200, 201, 204, 302, 399} {
		if err := classify("GET /api/health", status, nil); err != nil {
			t.Errorf("classify(%d) = %v, want nil", status, err)
		}
	}
}

func TestClassify_NotFound(t *testing.T) {
	err := classify("GET /api/cluster/c1/workspaces/demo", 404, []byte(`{"error":"no such workspace"}`))

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("expected APIError")
	}
	if apiErr.Kind != domain.ErrNotFound {
		t.Errorf("Kind = %v, want ErrNotFound", apiErr.Kind)
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
}

func TestClassify_Unauthorized(t *testing.T) {
	for _, status := range []int{401, 403} {
		err := classify("GET /api/deploy/clusters", status, nil)

		var apiErr *domain.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected APIError", status)
		}
		if apiErr.Kind != domain.ErrUnauthorized {
			t.Errorf("status %d: Kind = %v, want ErrUnauthorized", status, apiErr.Kind)
		}
	}
}

func TestClassify_GenericCarriesStatusAndBody(t *testing.T) {
	// Every >= 400 other than 401/403/404 is Generic with the status
	// code embedded in the message.
	for _, status := range []int{400, 409, 422, 429, 500, 502, 503} {
		err := classify("POST /api/cluster/c1/workspaces", status, []byte("quota exceeded\n"))

		var apiErr *domain.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("status %d: expected APIError", status)
		}
		if apiErr.Kind != domain.ErrGeneric {
			t.Errorf("status %d: Kind = %v, want ErrGeneric", status, apiErr.Kind)
		}
		if !strings.Contains(apiErr.Message, fmt.Sprintf("%d", status)) {
			t.Errorf("status %d: message %q does not embed the status", status, apiErr.Message)
		}
		if !strings.Contains(apiErr.Message, "quota exceeded") {
			t.Errorf("status %d: message %q does not carry the body text", status, apiErr.Message)
		}
	}
}
