package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with status and message",
			err:  &Error{Kind: KindValidation, Status: 400, Message: "email invalid"},
			want: "validation 400: email invalid",
		},
		{
			name: "without status",
			err:  &Error{Kind: KindNetwork, Message: "request failed"},
			want: "network: request failed",
		},
		{
			name: "with request ID",
			err:  &Error{Kind: KindNotFound, Status: 404, Message: "user not found", RequestID: "req-123"},
			want: "not_found 404: user not found (request_id: req-123)",
		},
		{
			name: "synthesized message",
			err:  &Error{Kind: KindServer, Status: 502},
			want: "server 502: HTTP 502 error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_IsMatchesByKind(t *testing.T) {
	err := &Error{Kind: KindRateLimit, Status: 429, Message: "slow down"}

	if !errors.Is(err, &Error{Kind: KindRateLimit}) {
		t.Error("errors.Is should match by kind regardless of other fields")
	}
	if errors.Is(err, &Error{Kind: KindServer}) {
		t.Error("errors.Is should not match a different kind")
	}
}

func TestError_IsMatchesWhenWrapped(t *testing.T) {
	inner := &Error{Kind: KindTimeout, Message: "GET /v1/users/me timed out after 5s"}
	wrapped := fmt.Errorf("fetch profile: %w", inner)

	if !errors.Is(wrapped, &Error{Kind: KindTimeout}) {
		t.Error("kind match should survive wrapping")
	}
	if KindOf(wrapped) != KindTimeout {
		t.Errorf("KindOf(wrapped) = %q, want %q", KindOf(wrapped), KindTimeout)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetwork(cause, "https://api.polaris.dev/v1/users")

	if !errors.Is(err, cause) {
		t.Error("Unwrap should expose the transport cause")
	}
	if err.Kind != KindNetwork || err.Code != CodeNetwork {
		t.Errorf("NewNetwork kind/code = %s/%s", err.Kind, err.Code)
	}
}

func TestNewTimeout(t *testing.T) {
	err := NewTimeout("GET /health", 2*time.Second)
	if err.Kind != KindTimeout {
		t.Errorf("Kind = %s, want %s", err.Kind, KindTimeout)
	}
	if err.Message != "GET /health timed out after 2s" {
		t.Errorf("Message = %q", err.Message)
	}
}

// TestIsRetryable_Partition enumerates every kind; the retryable set is
// exactly {network, timeout, rate_limit, service_unavailable, server>=500}.
func TestIsRetryable_Partition(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want bool
	}{
		{"network", &Error{Kind: KindNetwork}, true},
		{"timeout", &Error{Kind: KindTimeout}, true},
		{"rate limit", &Error{Kind: KindRateLimit, Status: 429}, true},
		{"service unavailable", &Error{Kind: KindServiceUnavailable, Status: 503}, true},
		{"server 500", &Error{Kind: KindServer, Status: 500}, true},
		{"server 502", &Error{Kind: KindServer, Status: 502}, true},
		{"validation", &Error{Kind: KindValidation, Status: 400}, false},
		{"authentication", &Error{Kind: KindAuthentication, Status: 401}, false},
		{"authorization", &Error{Kind: KindAuthorization, Status: 403}, false},
		{"not found", &Error{Kind: KindNotFound, Status: 404}, false},
		{"conflict", &Error{Kind: KindConflict, Status: 409}, false},
		{"generic http", &Error{Kind: KindHTTP, Status: 418}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable(%s) = %v, want %v", tt.err.Kind, got, tt.want)
			}
		})
	}
}

func TestIsRetryable_NonTaxonomyError(t *testing.T) {
	if IsRetryable(errors.New("plain error")) {
		t.Error("plain errors are not retryable")
	}
	if IsRetryable(nil) {
		t.Error("nil is not retryable")
	}
}

func TestRetryAfterHint(t *testing.T) {
	err := &Error{Kind: KindRateLimit, RetryAfter: 7 * time.Second}
	if got := RetryAfterHint(err); got != 7*time.Second {
		t.Errorf("RetryAfterHint = %v, want 7s", got)
	}
	if got := RetryAfterHint(&Error{Kind: KindServer}); got != 0 {
		t.Errorf("RetryAfterHint without hint = %v, want 0", got)
	}
	if got := RetryAfterHint(errors.New("plain")); got != 0 {
		t.Errorf("RetryAfterHint(plain) = %v, want 0", got)
	}
}

// The kind tag must survive a serialization round trip so classification
// works across process boundaries.
func TestError_JSONRoundTrip(t *testing.T) {
	orig := &Error{
		Kind:      KindValidation,
		Code:      "VALIDATION_ERROR",
		Message:   "email invalid",
		Status:    400,
		Details:   map[string]string{"email": "must be a valid address"},
		RequestID: "req-9",
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Error
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if decoded.Kind != orig.Kind {
		t.Errorf("Kind = %s, want %s", decoded.Kind, orig.Kind)
	}
	if decoded.Details["email"] != orig.Details["email"] {
		t.Errorf("Details = %v", decoded.Details)
	}
	if !IsKind(&decoded, KindValidation) {
		t.Error("deserialized error lost its kind tag")
	}
}
