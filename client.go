package polaris

import (
	"context"
	"fmt"

	"github.com/polarisapp/client-go/internal/transport"
)

// Client is the entry point to the Polaris platform APIs. It owns one
// resolved endpoint and credential cell shared by the service surfaces.
type Client struct {
	config    clientConfig
	transport *transport.Client

	auth    *AuthService
	users   *UsersService
	uploads *UploadsService
}

// New builds a client from functional options. The deployment environment
// is detected from the process environment unless pinned with
// WithEnvironment; the base URL is resolved once, at construction.
// Validation fails closed: out-of-range timeouts or retry counts are
// errors.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{
		audience: AudienceExternal,
		timeout:  transport.DefaultTimeout,
		retries:  transport.DefaultRetries,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.environment == "" {
		cfg.environment = DetectEnvironment()
	}
	if !cfg.environment.Valid() {
		return nil, fmt.Errorf("%w: environment %q", ErrInvalidConfig, cfg.environment)
	}
	if !cfg.audience.Valid() {
		return nil, fmt.Errorf("%w: audience %q", ErrInvalidConfig, cfg.audience)
	}
	if cfg.timeout < transport.MinTimeout || cfg.timeout > transport.MaxTimeout {
		return nil, fmt.Errorf("%w: timeout %v out of range [%v, %v]",
			ErrInvalidConfig, cfg.timeout, transport.MinTimeout, transport.MaxTimeout)
	}
	if cfg.retries < 0 || cfg.retries > transport.MaxRetries {
		return nil, fmt.Errorf("%w: retry count %d out of range [0, %d]",
			ErrInvalidConfig, cfg.retries, transport.MaxRetries)
	}

	baseURL := cfg.baseURL
	if baseURL == "" {
		var err error
		baseURL, err = ResolveEndpoint(cfg.environment, cfg.audience)
		if err != nil {
			return nil, err
		}
	}

	logger := cfg.logger
	if logger == nil && cfg.debug {
		logger = NewSimpleLogger()
	}

	var metrics transport.Recorder
	if cfg.metrics != nil {
		metrics = cfg.metrics
	}

	tc, err := transport.New(transport.Config{
		BaseURL:       baseURL,
		Timeout:       cfg.timeout,
		Retries:       cfg.retries,
		UserAgent:     UserAgent(),
		ClientVersion: Version,
		AccessToken:   cfg.accessToken,
		ExtraHeaders:  cfg.headers,
		Debug:         cfg.debug,
		Logger:        logger,
		Metrics:       metrics,
		HTTPClient:    cfg.httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c := &Client{
		config:    cfg,
		transport: tc,
	}
	c.auth = &AuthService{client: c}
	c.users = &UsersService{client: c}
	c.uploads = &UploadsService{client: c}
	return c, nil
}

// Auth returns the authentication service surface.
func (c *Client) Auth() *AuthService {
	return c.auth
}

// Users returns the user-profile service surface.
func (c *Client) Users() *UsersService {
	return c.users
}

// Uploads returns the file-upload service surface.
func (c *Client) Uploads() *UploadsService {
	return c.uploads
}

// Environment returns the environment the client was constructed for.
func (c *Client) Environment() Environment {
	return c.config.environment
}

// Endpoint returns the resolved base URL.
func (c *Client) Endpoint() string {
	return c.transport.BaseURL()
}

// SetAccessToken replaces the bearer token used by subsequent requests.
// In-flight requests keep the token they started with.
func (c *Client) SetAccessToken(token string) {
	c.transport.SetAccessToken(token)
}

// ClearAccessToken removes the bearer token.
func (c *Client) ClearAccessToken() {
	c.transport.ClearAccessToken()
}

// AccessToken returns the currently set bearer token.
func (c *Client) AccessToken() string {
	return c.transport.AccessToken()
}

// Health probes the service health endpoint with a short fixed timeout and
// reports reachability rather than returning an error.
func (c *Client) Health(ctx context.Context) bool {
	return c.transport.Health(ctx)
}
