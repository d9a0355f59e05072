package guildnet

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/docxology/metaguildnet/internal/domain"
)

// execute issues exactly one HTTP round-trip and returns the raw status
// and body. Any failure before a status is obtained (refused, DNS, TLS,
// timeout) comes back as *domain.TransportError so callers can tell
// "unreachable" apart from "responded with an error".
func (c *Client) execute(ctx context.Context, method, path string, body any) (int, []byte, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json")
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return 0, nil, &domain.TransportError{Op: method + " " + path, Err: err}
	}
	return resp.StatusCode(), resp.Body(), nil
}

// roundTrip runs execute, classifies the status, and decodes the body.
// DELETE responses are never decoded regardless of content. For other
// methods a non-empty body must be valid JSON even when the caller
// discards the result; a parse failure is surfaced, never swallowed.
func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	op := method + " " + path

	status, raw, err := c.execute(ctx, method, path, body)
	if err != nil {
		return err
	}
	if err := classify(op, status, raw); err != nil {
		return err
	}

	if method == http.MethodDelete {
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	if out == nil {
		var discard any
		out = &discard
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.DecodeError{Op: op, Err: err}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.roundTrip(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.roundTrip(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.roundTrip(ctx, http.MethodPut, path, body, out)
}

func (c *Client) del(ctx context.Context, path string) error {
	return c.roundTrip(ctx, http.MethodDelete, path, nil, nil)
}
