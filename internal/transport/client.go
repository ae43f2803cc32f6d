// Package transport implements the shared request engine every Polaris
// service client builds on: configuration defaults, header assembly,
// retry-with-backoff dispatch, and normalization of failures into the error
// taxonomy. Business-error envelopes pass through as values; only transport
// failures and unrecognizable HTTP errors surface as Go errors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/polarisapp/client-go/internal/apierrors"
	"github.com/polarisapp/client-go/internal/retry"
)

// Configuration bounds and defaults.
const (
	MinTimeout     = 1 * time.Second
	MaxTimeout     = 60 * time.Second
	DefaultTimeout = 10 * time.Second

	MaxRetries     = 5
	DefaultRetries = 2

	// HealthTimeout is the fixed deadline for health probes.
	HealthTimeout = 2 * time.Second
)

// Backoff tuning for retried attempts.
const (
	retryInitialDelay = 200 * time.Millisecond
	retryMaxDelay     = 10 * time.Second
	retryMultiplier   = 2.0
)

// Logger receives debug output when debug mode is enabled.
type Logger interface {
	Debugf(format string, v ...any)
}

// Recorder receives request lifecycle observations for metrics.
type Recorder interface {
	ObserveRequest(method, path string, status int, duration time.Duration)
	IncRetry(method, path string)
	IncError(kind string)
}

// Config configures a transport client. Zero values fall back to defaults;
// out-of-range values are rejected by New.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	Retries       int
	UserAgent     string
	ClientVersion string
	AccessToken   string
	ExtraHeaders  map[string]string
	Debug         bool
	Logger        Logger
	Metrics       Recorder
	HTTPClient    *http.Client
}

// Client executes typed requests against one resolved base endpoint.
// It is safe for concurrent use; the access token is the only mutable slot.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	timeout       time.Duration
	retries       int
	userAgent     string
	clientVersion string
	extraHeaders  map[string]string
	debug         bool
	logger        Logger
	metrics       Recorder

	mu          sync.RWMutex
	accessToken string
}

// New validates cfg and builds a transport client. Validation fails closed:
// a timeout outside [1s, 60s] or a retry count outside [0, 5] is an error,
// not a silent clamp.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Timeout < MinTimeout || cfg.Timeout > MaxTimeout {
		return nil, fmt.Errorf("timeout %v out of range [%v, %v]", cfg.Timeout, MinTimeout, MaxTimeout)
	}
	if cfg.Retries < 0 || cfg.Retries > MaxRetries {
		return nil, fmt.Errorf("retry count %d out of range [0, %d]", cfg.Retries, MaxRetries)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:       strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient:    httpClient,
		timeout:       cfg.Timeout,
		retries:       cfg.Retries,
		userAgent:     cfg.UserAgent,
		clientVersion: cfg.ClientVersion,
		extraHeaders:  cfg.ExtraHeaders,
		debug:         cfg.Debug,
		logger:        cfg.Logger,
		metrics:       cfg.Metrics,
		accessToken:   cfg.AccessToken,
	}, nil
}

// SetAccessToken replaces the bearer token used by subsequent requests.
// Requests already dispatched keep the token they started with.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

// ClearAccessToken removes the bearer token.
func (c *Client) ClearAccessToken() {
	c.SetAccessToken("")
}

// AccessToken returns the currently set bearer token.
func (c *Client) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

// BaseURL returns the resolved base endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient exposes the underlying HTTP client for caller-side transfers
// (presigned uploads) that bypass the request engine.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// CallOptions tune a single request.
type CallOptions struct {
	Headers       map[string]string
	Timeout       time.Duration
	SkipRetry     bool
	RequestID     string
	CorrelationID string
}

// Response is the raw outcome of one request after retries: the final HTTP
// status and body. Err-free responses are either success payloads or
// pass-through business-error envelopes.
type Response struct {
	Status    int
	Body      []byte
	Header    http.Header
	RequestID string
}

// Do runs one logical request through the retry engine and returns the raw
// response. Transport failures (connection refused, DNS, timeout) and HTTP
// errors without a recognizable envelope body come back as taxonomy errors;
// HTTP errors whose body carries a success:false envelope come back as a
// normal Response for the typed layer to pass through.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts *CallOptions) (*Response, error) {
	if opts == nil {
		opts = &CallOptions{}
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	requestID := opts.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	// Token is read once per logical call: a SetAccessToken racing with an
	// in-flight request does not re-authenticate its retries.
	token := c.AccessToken()

	url := c.baseURL + path
	start := time.Now()
	c.debugf("request start method=%s url=%s request_id=%s", method, url, requestID)

	var res *Response
	attemptFn := func(ctx context.Context) error {
		r, err := c.attempt(ctx, method, url, path, payload, timeout, token, requestID, opts)
		if err != nil {
			return err
		}
		res = r
		return nil
	}

	var err error
	if opts.SkipRetry || c.retries == 0 {
		err = attemptFn(ctx)
	} else {
		err = retry.Do(ctx, attemptFn, retry.Policy{
			MaxAttempts:  c.retries + 1,
			InitialDelay: retryInitialDelay,
			MaxDelay:     retryMaxDelay,
			Multiplier:   retryMultiplier,
			Jitter:       true,
			ShouldRetry:  apierrors.IsRetryable,
			DelayHint:    apierrors.RetryAfterHint,
			OnRetry: func(err error, attempt int) {
				c.debugf("retry attempt=%d method=%s path=%s err=%v", attempt, method, path, err)
				if c.metrics != nil {
					c.metrics.IncRetry(method, path)
				}
			},
		})
	}

	if err != nil {
		// An HTTP error whose body is a recognizable envelope passes
		// through as a value, consistent with the success path.
		var apiErr *apierrors.Error
		if errors.As(err, &apiErr) && apiErr.Status > 0 {
			if body, ok := errBody(err); ok && looksLikeEnvelope(body) {
				res = &Response{
					Status:    apiErr.Status,
					Body:      body,
					RequestID: apiErr.RequestID,
				}
				c.observe(method, path, apiErr.Status, start)
				return res, nil
			}
		}
		if c.metrics != nil {
			c.metrics.IncError(string(apierrors.KindOf(err)))
		}
		c.debugf("request failed method=%s path=%s err=%v", method, path, err)
		return nil, err
	}

	c.observe(method, path, res.Status, start)
	return res, nil
}

// attempt performs exactly one HTTP exchange.
func (c *Client) attempt(ctx context.Context, method, url, path string, payload []byte, timeout time.Duration, token, requestID string, opts *CallOptions) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", requestID)
	if opts.CorrelationID != "" {
		req.Header.Set("X-Correlation-ID", opts.CorrelationID)
	}
	if c.clientVersion != "" {
		req.Header.Set("X-Client-Version", c.clientVersion)
	}
	for k, v := range c.extraHeaders {
		req.Header.Set(k, v)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apierrors.NewTimeout(method+" "+path, timeout)
		}
		return nil, apierrors.NewNetwork(err, url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apierrors.NewNetwork(err, url)
	}

	c.debugf("response method=%s path=%s status=%d bytes=%d", method, path, resp.StatusCode, len(body))

	if resp.StatusCode >= 400 {
		apiErr := apierrors.Classify(resp.StatusCode, body, requestID)
		apiErr.RetryAfter = apierrors.ParseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, &attemptError{apiErr: apiErr, body: body}
	}

	return &Response{
		Status:    resp.StatusCode,
		Body:      body,
		Header:    resp.Header,
		RequestID: requestID,
	}, nil
}

// attemptError pairs a classified HTTP error with the raw body so the
// pass-through decision can inspect it after retries settle.
type attemptError struct {
	apiErr *apierrors.Error
	body   []byte
}

func (e *attemptError) Error() string { return e.apiErr.Error() }

func (e *attemptError) Unwrap() error { return e.apiErr }

func errBody(err error) ([]byte, bool) {
	var ae *attemptError
	if errors.As(err, &ae) {
		return ae.body, true
	}
	return nil, false
}

// Health probes GET /health with a short fixed timeout and reports
// reachability. It never returns an error: any failure is "unreachable".
func (c *Client) Health(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

func (c *Client) observe(method, path string, status int, start time.Time) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(method, path, status, time.Since(start))
	}
}

func (c *Client) debugf(format string, v ...any) {
	if c.debug && c.logger != nil {
		c.logger.Debugf(format, v...)
	}
}

// Call runs a typed request: it dispatches through Do and decodes the
// outcome into an envelope. Bodies without a success discriminant (bare
// payloads) are wrapped in a synthetic success envelope so callers always
// branch on the same shape.
func Call[T any](ctx context.Context, c *Client, method, path string, body any, opts *CallOptions) (*Envelope[T], error) {
	res, err := c.Do(ctx, method, path, body, opts)
	if err != nil {
		return nil, err
	}

	if len(res.Body) == 0 {
		return &Envelope[T]{Success: true, Status: res.Status}, nil
	}

	if looksLikeEnvelope(res.Body) {
		env, err := decodeEnvelope[T](res.Body, res.Status)
		if err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return env, nil
	}

	var data T
	if err := json.Unmarshal(res.Body, &data); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return successEnvelope(data, res.Status), nil
}
