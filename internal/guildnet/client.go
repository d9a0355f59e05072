package guildnet

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/docxology/metaguildnet/internal/domain"
)

// Config holds the immutable settings for one client instance.
// It is resolved once (file + env + flags) before construction; the
// client never re-reads environment state per call.
type Config struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	VerifyTLS bool
}

// Client talks to the GuildNet Host App HTTP API.
// It implements domain.Gateway. Every operation is a single
// request/response round-trip: no caching, no client-side retry.
type Client struct {
	http    *resty.Client
	baseURL string
	logf    func(format string, args ...any)
}

// Compile-time check that Client implements domain.Gateway.
var _ domain.Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithLogf sets a sink for diagnostic warnings (unexpected responses).
func WithLogf(logf func(format string, args ...any)) Option {
	return func(c *Client) {
		c.logf = logf
	}
}

// New creates a Host App client. Self-signed certificates are the
// norm for local deployments, so TLS verification is opt-in.
func New(cfg Config, opts ...Option) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	hc := resty.New().
		SetBaseURL(base).
		SetTimeout(timeout).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: !cfg.VerifyTLS}).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		hc.SetAuthToken(cfg.Token)
	}

	c := &Client{
		http:    hc,
		baseURL: base,
		logf:    func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }
