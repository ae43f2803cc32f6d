package polaris

import (
	"net/http"
	"time"
)

// clientConfig holds configuration for the client. Defaults are applied and
// validated by New.
type clientConfig struct {
	environment Environment
	audience    Audience
	baseURL     string
	timeout     time.Duration
	retries     int
	accessToken string
	headers     map[string]string
	debug       bool
	logger      Logger
	metrics     *MetricsCollector
	httpClient  *http.Client
}

// Option configures the client.
type Option func(*clientConfig)

// WithEnvironment pins the deployment environment instead of detecting it
// from the process environment.
func WithEnvironment(env Environment) Option {
	return func(c *clientConfig) {
		c.environment = env
	}
}

// WithAudience selects the gateway audience. Default: AudienceExternal.
func WithAudience(audience Audience) Option {
	return func(c *clientConfig) {
		c.audience = audience
	}
}

// WithInternalAPI targets the internal-network-only gateway.
func WithInternalAPI() Option {
	return WithAudience(AudienceInternal)
}

// WithBaseURL overrides the environment-resolved base URL.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout. Must be within [1s, 60s].
// Default: 10s.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the retry count for failed requests. Must be within
// [0, 5]; 0 disables retries. Default: 2.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithAccessToken sets the initial bearer token. The token can be replaced
// later via SetAccessToken.
func WithAccessToken(token string) Option {
	return func(c *clientConfig) {
		c.accessToken = token
	}
}

// WithHeader attaches an extra header to every request.
func WithHeader(key, value string) Option {
	return func(c *clientConfig) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// WithDebug enables debug logging of the request lifecycle. Output goes to
// the configured logger, or a simple stderr logger when none is set.
func WithDebug() Option {
	return func(c *clientConfig) {
		c.debug = true
	}
}

// WithLogger sets a custom logger for debug output.
func WithLogger(logger Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

// WithMetrics attaches a Prometheus metrics collector to the request
// lifecycle.
func WithMetrics(metrics *MetricsCollector) Option {
	return func(c *clientConfig) {
		c.metrics = metrics
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}
