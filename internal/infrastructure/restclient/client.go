// Package restclient talks to the super_admin REST API on behalf of the
// dashboard controllers.
package restclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/99minutos/admin-dashboard/internal/core/domain"
	"github.com/99minutos/admin-dashboard/internal/core/ports"
	"github.com/99minutos/admin-dashboard/internal/pkg/metrics"
)

const (
	defaultTimeout = 30 * time.Second

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 8 << 20

	headerRequestID = "X-Request-ID"
)

// Config configures the client.
type Config struct {
	// BaseURL is the collection root, e.g. http://localhost:8000/api/super_admin/
	BaseURL string
	// Timeout bounds every request end to end. Zero uses 30s.
	Timeout time.Duration
	// HTTPClient overrides the transport; its Timeout is left untouched.
	HTTPClient *http.Client
}

// Client implements ports.ResourceClient over HTTP. It never retries.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	log        zerolog.Logger
}

var _ ports.ResourceClient = (*Client)(nil)

// New validates cfg and returns a client.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("restclient: base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("restclient: parse base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("restclient: unsupported scheme %q", base.Scheme)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		log:        log.With().Str("component", "restclient").Logger(),
	}, nil
}

// List fetches a collection. The body must be a JSON array of objects.
func (c *Client) List(ctx context.Context, res domain.Resource, s domain.Session, opts ports.ListOptions) (rows []domain.Row, err error) {
	defer c.observe(res, "list", time.Now(), &err)

	query := url.Values{}
	if opts.Limit > 0 {
		page := opts.Page
		if page < 1 {
			page = 1
		}
		query.Set("page", strconv.Itoa(page))
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	resp, err := c.do(ctx, s, http.MethodGet, res.ListPath(), query, nil)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", res.Name, err)
	}
	defer drain(resp)

	if !success(resp.StatusCode) {
		return nil, fmt.Errorf("list %s: %w", res.Name, statusError(resp, false))
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("list %s: %w: %w", res.Name, domain.ErrDecode, err)
	}
	if rows == nil {
		rows = []domain.Row{}
	}
	return rows, nil
}

// Create posts a new row to the collection.
func (c *Client) Create(ctx context.Context, res domain.Resource, s domain.Session, payload domain.Payload) (err error) {
	defer c.observe(res, "create", time.Now(), &err)

	body, err := encodePayload(res, payload, false)
	if err != nil {
		return fmt.Errorf("create %s: %w", res.Name, err)
	}
	if err := c.mutate(ctx, s, http.MethodPost, res.CreatePath, body); err != nil {
		return fmt.Errorf("create %s: %w", res.Name, err)
	}
	return nil
}

// Update replaces the fields of the row with the given id. Resources that
// use method-override are sent as POST with a _method=PUT field.
func (c *Client) Update(ctx context.Context, res domain.Resource, s domain.Session, id string, payload domain.Payload) (err error) {
	defer c.observe(res, "update", time.Now(), &err)

	override := res.UpdateVerb == domain.UpdateMethodOverride
	body, err := encodePayload(res, payload, override)
	if err != nil {
		return fmt.Errorf("update %s %s: %w", res.Name, id, err)
	}

	method := http.MethodPut
	if override {
		method = http.MethodPost
	}
	if err := c.mutate(ctx, s, method, res.ItemPath(id), body); err != nil {
		return fmt.Errorf("update %s %s: %w", res.Name, id, err)
	}
	return nil
}

// Delete removes the row with the given id.
func (c *Client) Delete(ctx context.Context, res domain.Resource, s domain.Session, id string) (err error) {
	defer c.observe(res, "delete", time.Now(), &err)

	resp, err := c.do(ctx, s, http.MethodDelete, res.ItemPath(id), nil, nil)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", res.Name, id, err)
	}
	defer drain(resp)

	if !success(resp.StatusCode) {
		return fmt.Errorf("delete %s %s: %w", res.Name, id, statusError(resp, false))
	}
	return nil
}

func (c *Client) mutate(ctx context.Context, s domain.Session, method, path string, body *encodedBody) error {
	resp, err := c.do(ctx, s, method, path, nil, body)
	if err != nil {
		return err
	}
	defer drain(resp)

	if !success(resp.StatusCode) {
		return statusError(resp, true)
	}
	return nil
}

// do sends one request. A missing credential fails before anything is sent.
func (c *Client) do(ctx context.Context, s domain.Session, method, path string, query url.Values, body *encodedBody) (*http.Response, error) {
	if !s.Authenticated() {
		return nil, domain.ErrNoCredential
	}

	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	target := c.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = body.reader
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Token)
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", body.contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("url", target.String()).Str("request_id", requestID).Msg("request failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("url", target.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("request completed")
	return resp, nil
}

func (c *Client) observe(res domain.Resource, op string, start time.Time, errp *error) {
	metrics.ClientRequestDuration.WithLabelValues(res.Name, op).Observe(time.Since(start).Seconds())
	metrics.ClientRequestsTotal.WithLabelValues(res.Name, op, outcome(*errp)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrTransport):
		return "transport"
	case errors.Is(err, domain.ErrAuth), errors.Is(err, domain.ErrNoCredential):
		return "auth"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrDecode):
		return "decode"
	default:
		return "failed"
	}
}

func success(status int) bool {
	return status >= 200 && status < 300
}

// drain discards what is left of the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
}
