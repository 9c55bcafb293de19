// Package client sends validated lead inquiries to the lead API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"leadcapture_frontend/internal/leads/domain"
	"leadcapture_frontend/internal/leads/transport"
	"leadcapture_frontend/platform/apperr"
	"leadcapture_frontend/platform/config"
	"leadcapture_frontend/platform/logger"
	"leadcapture_frontend/platform/sanitize"
)

// DefaultTimeout bounds every call to the lead API.
const DefaultTimeout = 12 * time.Second

// Lead API paths.
const (
	PathContact       = "/api/contact"
	PathPlotInquiries = "/api/plot-inquiries"
	PathHealth        = "/api/health"
)

// User-facing failure messages.
const (
	MsgTimeout = "Request timed out. Please retry."
	MsgNetwork = "Network error. Please check your connection and retry."
)

const maxResponseBytes = 1 << 20

// Result is the outcome of an accepted submission.
type Result struct {
	Endpoint string
	Status   int
	// Message is the sanitized server message, if any.
	Message string
	Latency time.Duration
}

// Client is the HTTP client for the lead API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-call deadline. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New creates a client for an already resolved base URL.
func New(baseURL string, log *logger.Logger, opts ...Option) *Client {
	if log == nil {
		log = logger.Discard()
	}
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    trimBase(baseURL),
		timeout:    DefaultTimeout,
		log:        log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig resolves the base URL from cfg and creates a client.
func NewFromConfig(cfg config.APIConfig, log *logger.Logger, opts ...Option) *Client {
	opts = append([]Option{WithTimeout(cfg.GetAPITimeout())}, opts...)
	return New(EndpointFromConfig(cfg).Resolve(), log, opts...)
}

// BaseURL returns the resolved API base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// EndpointFor returns the API path an inquiry is posted to.
func EndpointFor(in domain.LeadInquiry) string {
	if in.PlotID != "" {
		return PathPlotInquiries
	}
	return PathContact
}

// Submit posts a validated inquiry. Every error is an *apperr.Error.
func (c *Client) Submit(ctx context.Context, in domain.LeadInquiry) (Result, error) {
	const op = "client.Submit"

	if in.Source == "" {
		return Result{}, apperr.Validation("lead source is missing").WithOp(op)
	}

	path := EndpointFor(in)
	var body any = transport.NewContactRequest(in)
	if path == PathPlotInquiries {
		body = transport.NewPlotInquiryRequest(in)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindInternal, "Could not prepare the request.", err).WithOp(op)
	}

	start := time.Now()
	status, raw, callErr := c.do(ctx, http.MethodPost, JoinURL(c.baseURL, path), payload)
	if callErr != nil {
		return Result{}, callErr.WithOp(op)
	}
	latency := time.Since(start)

	resp, parsed := parseResponse(raw)
	if status < 200 || status > 299 || resp.Failed() {
		msg := serverMessage(resp)
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", status)
		}
		c.log.Warn("lead api rejected submission", "endpoint", path, "status", status, "message", msg)
		return Result{}, apperr.HTTP(status, msg).WithOp(op)
	}

	if !parsed {
		c.log.Warn("lead api returned a non-JSON success body", "endpoint", path, "status", status, "bytes", len(raw))
	}

	return Result{
		Endpoint: path,
		Status:   status,
		Message:  sanitize.Text(resp.Message),
		Latency:  latency,
	}, nil
}

// do performs one bounded request and returns the status and body.
func (c *Client) do(ctx context.Context, method, reqURL string, payload []byte) (int, []byte, *apperr.Error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return 0, nil, apperr.Wrap(apperr.KindInternal, "Could not prepare the request.", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, c.transportError(ctx, reqURL, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return 0, nil, c.transportError(ctx, reqURL, err)
	}
	return resp.StatusCode, raw, nil
}

func (c *Client) transportError(ctx context.Context, reqURL string, err error) *apperr.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		c.log.Warn("lead api request timed out", "url", reqURL, "timeout", c.timeout.String())
		return apperr.Timeout(MsgTimeout, err)
	}
	c.log.Error("lead api request failed", "error", err, "url", reqURL)
	return apperr.Network(MsgNetwork, err)
}

// parseResponse decodes the API envelope. parsed is false for empty or
// non-JSON bodies, which yield a zero envelope.
func parseResponse(raw []byte) (transport.APIResponse, bool) {
	var resp transport.APIResponse
	if len(bytes.TrimSpace(raw)) == 0 {
		return resp, false
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return transport.APIResponse{}, false
	}
	return resp, true
}

func serverMessage(resp transport.APIResponse) string {
	if msg := sanitize.Text(resp.Message); msg != "" {
		return msg
	}
	return sanitize.Text(strings.TrimSpace(resp.Error))
}
