// Package gateway implements the HTTP client for the remote payment gateway
// API. All business data and every privileged mutation lives upstream; this
// client only shapes requests, classifies failures, and decodes the
// gateway's response envelope.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nexapay/admin-portal/internal/core/domain"
	"github.com/nexapay/admin-portal/internal/infra/config"
)

// Client calls the remote gateway API with bounded timeouts.
type Client struct {
	baseURL string
	http    *http.Client
	long    *http.Client
	logger  *zap.Logger
}

// NewClient constructs a Client from gateway settings. Timeout bounds
// ordinary calls; LongTimeout bounds heavy list endpoints.
func NewClient(cfg config.GatewaySettings, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("gateway: base url is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	longTimeout := cfg.LongTimeout
	if longTimeout <= 0 {
		longTimeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		long:    &http.Client{Timeout: longTimeout},
		logger:  logger,
	}, nil
}

// envelope is the gateway's standard response wrapper.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (c *Client) newRequest(ctx context.Context, method, path, bearer string, query url.Values, body any) (*http.Request, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	return req, nil
}

// do executes the request and decodes the envelope. Transport failures are
// classified into ErrTimeout / ErrUnavailable; upstream 401s become
// ErrUnauthorized; other non-success envelopes become *APIError.
func (c *Client) do(client *http.Client, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return classifyTransportError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return classifyTransportError(err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 500 {
			return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: "malformed gateway response"}
	}

	if resp.StatusCode >= 400 || !env.Status {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if len(env.Data) == 0 {
			return &APIError{StatusCode: resp.StatusCode, Message: "gateway response missing data"}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode gateway response: %w", err)
		}
	}

	return nil
}

func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func pageQueryValues(q domain.PageQuery) url.Values {
	q = q.Normalize()

	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}

	return values
}
