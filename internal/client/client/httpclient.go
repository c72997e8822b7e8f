package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/tailorhub/internal/client/models"
	"github.com/dmitrijs2005/tailorhub/internal/common"
	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

const (
	DefaultTimeout = 10 * time.Second
	tracerName     = "github.com/dmitrijs2005/tailorhub/internal/client/client"
	maxErrorBody   = 64 << 10
)

// Options configures an HTTPClient. Only BaseURL is required.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     TokenSource
	Metrics    *Metrics
	Logger     logging.Logger
	Tracer     trace.Tracer
}

// HTTPClient implements Client over the REST/JSON backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	metrics *Metrics
	logger  logging.Logger
	tracer  trace.Tracer

	mu     sync.RWMutex
	tokens TokenSource
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(opts Options) (*HTTPClient, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("api base url is empty")
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	tracer := opts.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	return &HTTPClient{
		baseURL: base,
		http:    hc,
		metrics: opts.Metrics,
		logger:  opts.Logger,
		tracer:  tracer,
		tokens:  opts.Tokens,
	}, nil
}

// SetTokenSource replaces the bearer token source. The session service is
// created after the client, so main wires it here.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

func (c *HTTPClient) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// call describes one request. route is the path template used for metrics
// and span names; path is the concrete, already escaped path.
type call struct {
	method      string
	route       string
	path        string
	body        io.Reader
	contentType string
	idempotent  bool
}

func jsonCall(method, route, path string, in any) (call, error) {
	c := call{method: method, route: route, path: path}
	if in == nil {
		return c, nil
	}
	b, err := json.Marshal(in)
	if err != nil {
		return call{}, fmt.Errorf("encode %s body: %w", route, err)
	}
	c.body = bytes.NewReader(b)
	c.contentType = "application/json"
	return c, nil
}

// doJSON sends a JSON request and decodes the JSON response into out.
func (c *HTTPClient) doJSON(ctx context.Context, method, route, path string, in, out any, idempotent bool) error {
	cl, err := jsonCall(method, route, path, in)
	if err != nil {
		return err
	}
	cl.idempotent = idempotent
	return c.do(ctx, cl, out)
}

func (c *HTTPClient) do(ctx context.Context, cl call, out any) (err error) {
	ctx, span := c.tracer.Start(ctx, cl.method+" "+cl.route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", cl.method),
			attribute.String("http.route", cl.route),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, ErrorMessage(err))
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, cl.body)
	if err != nil {
		return fmt.Errorf("build request %s %s: %w", cl.method, cl.route, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(common.RequestIDHeaderName, requestID)
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if token := c.token(); token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	if cl.idempotent {
		key := IdempotencyKey(ctx)
		if key == "" {
			key = uuid.NewString()
		}
		req.Header.Set(common.IdempotencyKeyHeaderName, key)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.observe(cl.method, cl.route, 0, time.Since(start))
		c.logWarn(ctx, "api request failed", "method", cl.method, "route", cl.route, "request_id", requestID, "error", err)
		return newTransportError(err)
	}
	defer resp.Body.Close()

	c.metrics.observe(cl.method, cl.route, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := newStatusError(cl.route, resp.StatusCode, drainError(resp.Body))
		c.logWarn(ctx, "api request rejected", "method", cl.method, "route", cl.route,
			"status", resp.StatusCode, "request_id", requestID, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty body")
		}
		return &APIError{Status: resp.StatusCode, Message: MsgGeneric, Kind: ErrServer,
			Err: fmt.Errorf("decode %s response: %w", cl.route, err)}
	}
	return nil
}

func (c *HTTPClient) logWarn(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(ctx, msg, args...)
	}
}

// errorPayload covers the message shapes backends commonly return.
type errorPayload struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func drainError(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var p errorPayload
	if json.Unmarshal(b, &p) == nil {
		if p.Message != "" {
			return p.Message
		}
		if p.Error != "" {
			return p.Error
		}
		return ""
	}
	return strings.TrimSpace(string(b))
}

// multipartCall encodes files under field as multipart/form-data.
func multipartCall(route, path, field string, files []models.UploadedFile) (call, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := w.CreateFormFile(field, f.Name)
		if err != nil {
			return call{}, fmt.Errorf("create form file %q: %w", f.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return call{}, fmt.Errorf("write form file %q: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return call{}, fmt.Errorf("close multipart writer: %w", err)
	}
	return call{
		method:      http.MethodPost,
		route:       route,
		path:        path,
		body:        &buf,
		contentType: w.FormDataContentType(),
	}, nil
}
