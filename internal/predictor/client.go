// Package predictor is the HTTP client for the external dropout prediction
// service.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/abhisek/edurisk/internal/assessment"
)

const (
	predictPath = "/predict"
	healthPath  = "/health"

	// maxBodyBytes bounds how much of a response body is read.
	maxBodyBytes = 1 << 20
)

// Client talks to the prediction service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	tracer  trace.Tracer
}

var _ assessment.Predictor = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop(),
		tracer:  otel.Tracer("github.com/abhisek/edurisk/internal/predictor"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predict posts the payload and returns the response body untouched.
// It sends exactly one request and never retries.
func (c *Client) Predict(ctx context.Context, p assessment.Payload) (json.RawMessage, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	ctx, span := c.tracer.Start(ctx, "predictor.Predict", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	requestID := uuid.NewString()
	span.SetAttributes(attribute.String("request.id", requestID))

	start := time.Now()
	blob, status, err := c.do(ctx, http.MethodPost, predictPath, body, requestID)
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("request_id", requestID),
		zap.Int("status", status),
		zap.Duration("latency", latency),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warn("prediction request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	if !gjson.ValidBytes(blob) {
		span.SetStatus(codes.Error, ErrInvalidResponse.Error())
		c.logger.Warn("prediction response is not JSON", append(fields, zap.Int("bytes", len(blob)))...)
		return nil, ErrInvalidResponse
	}

	c.logger.Info("prediction received", append(fields, zap.String("risk", gjson.GetBytes(blob, "risk").String()))...)
	return json.RawMessage(blob), nil
}

// Health reports the service's self-described status.
type Health struct {
	Status            string
	ModelLoaded       bool
	DatabaseConnected bool
}

// Health queries the service health endpoint. Missing keys read as zero values.
func (c *Client) Health(ctx context.Context) (Health, error) {
	ctx, span := c.tracer.Start(ctx, "predictor.Health", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	blob, _, err := c.do(ctx, http.MethodGet, healthPath, nil, uuid.NewString())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Health{}, err
	}
	if !gjson.ValidBytes(blob) {
		return Health{}, ErrInvalidResponse
	}

	res := gjson.ParseBytes(blob)
	return Health{
		Status:            res.Get("status").String(),
		ModelLoaded:       res.Get("model_loaded").Bool(),
		DatabaseConnected: res.Get("database_connected").Bool(),
	}, nil
}

// Endpoint returns the service base URL.
func (c *Client) Endpoint() string {
	return c.baseURL
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, requestID string) ([]byte, int, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, &ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, &ErrUnavailable{Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return blob, resp.StatusCode, &StatusError{
			StatusCode: resp.StatusCode,
			Message:    gjson.GetBytes(blob, "error").String(),
		}
	}
	return blob, resp.StatusCode, nil
}
