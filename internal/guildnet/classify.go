package guildnet

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/docxology/metaguildnet/internal/domain"
)

// classify maps an HTTP status to the error taxonomy. Anything below
// 400 is not an error and the response passes through.
func classify(op string, status int, body []byte) error {
	switch {
	case status < 400:
		return nil

	case status == http.StatusNotFound:
		return &domain.APIError{
			Kind:       domain.ErrNotFound,
			StatusCode: status,
			Message:    "resource not found: " + op,
		}

	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &domain.APIError{
			Kind:       domain.ErrUnauthorized,
			StatusCode: status,
			Message:    "unauthorized",
		}

	default:
		return &domain.APIError{
			Kind:       domain.ErrGeneric,
			StatusCode: status,
			Message:    fmt.Sprintf("api error %d: %s", status, bytes.TrimSpace(body)),
		}
	}
}
