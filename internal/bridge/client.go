// Package bridge is the synchronous client for the generic REST bridge in front
// of the party backend. It exposes GET and POST and returns every HTTP response
// as data; only calls that produce no response fail.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"partybridge/pkg/requestcontext"
)

// CorrelationHeader carries the correlation id on requests and error responses.
const CorrelationHeader = "X-Correlation-Id"

const (
	defaultTimeout   = 10 * time.Second
	maxResponseBytes = 4 << 20
	tracerName       = "partybridge/bridge"
)

// Response is the envelope of one bridge call. It is consumed once and not retained.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Client calls the bridge over HTTP. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-call timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// New constructs a Client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse bridge base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("bridge base URL must be absolute: %q", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get issues a GET to path with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST to path with body encoded as JSON. A nil body sends no payload.
func (c *Client) Post(ctx context.Context, path string, query url.Values, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, query, body)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	ctx, span := c.tracer.Start(ctx, "bridge "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("bridge.path", path),
		),
	)
	defer span.End()

	resp, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(GetCategory(err)))
		return nil, err
	}
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	if resp.StatusCode >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
	}
	return resp, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (*Response, error) {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, newTransportError(ErrorBadData, method, path, fmt.Errorf("encode request body: %w", err))
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path, query), payload)
	if err != nil {
		return nil, newTransportError(ErrorInternal, method, path, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	correlationID := requestcontext.RequestID(ctx)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	req.Header.Set(CorrelationHeader, correlationID)

	start := time.Now()
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		category := categorize(err)
		c.logger.WarnContext(ctx, "bridge call failed",
			"method", method,
			"path", path,
			"category", category,
			"correlation_id", correlationID,
			"error", err,
		)
		return nil, newTransportError(category, method, path, err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, newTransportError(ErrorBadData, method, path, fmt.Errorf("read response body: %w", err))
	}
	if len(raw) > maxResponseBytes {
		c.logger.WarnContext(ctx, "bridge response too large",
			"method", method,
			"path", path,
			"status", httpResp.StatusCode,
			"correlation_id", correlationID,
			"limit_bytes", maxResponseBytes,
		)
		return nil, newTransportError(ErrorBadData, method, path, fmt.Errorf("response too large: exceeds %d bytes", maxResponseBytes))
	}

	c.logger.DebugContext(ctx, "bridge call completed",
		"method", method,
		"path", path,
		"status", httpResp.StatusCode,
		"correlation_id", correlationID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       raw,
		Header:     httpResp.Header,
	}, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}
