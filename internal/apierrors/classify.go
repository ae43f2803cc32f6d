package apierrors

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxRetryAfter caps server-supplied Retry-After hints.
const maxRetryAfter = time.Hour

// errorEnvelope mirrors the error variant of the wire envelope, enough to
// pull code/message/details out of an error response body.
type errorEnvelope struct {
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// Classify maps an HTTP status and response body to a taxonomy error.
// When the body carries a recognizable error envelope, its code, message and
// details are preserved; otherwise a generic "HTTP <status> error" message is
// synthesized.
func Classify(status int, body []byte, requestID string) *Error {
	e := &Error{
		Status:    status,
		RequestID: requestID,
	}

	switch {
	case status == http.StatusBadRequest:
		e.Kind, e.Code = KindValidation, CodeValidation
	case status == http.StatusUnauthorized:
		e.Kind, e.Code = KindAuthentication, CodeAuthentication
	case status == http.StatusForbidden:
		e.Kind, e.Code = KindAuthorization, CodeAuthorization
	case status == http.StatusNotFound:
		e.Kind, e.Code = KindNotFound, CodeNotFound
	case status == http.StatusConflict:
		e.Kind, e.Code = KindConflict, CodeConflict
	case status == http.StatusTooManyRequests:
		e.Kind, e.Code = KindRateLimit, CodeRateLimit
	case status == http.StatusServiceUnavailable:
		e.Kind, e.Code = KindServiceUnavailable, CodeServiceUnavailable
	case status >= 500:
		e.Kind, e.Code = KindServer, CodeServer
	default:
		e.Kind, e.Code = KindHTTP, CodeHTTP
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil {
		if env.Error.Code != "" {
			e.Code = env.Error.Code
		}
		e.Message = env.Error.Message
		e.Details = env.Error.Details
	}
	if e.Message == "" {
		e.Message = "HTTP " + strconv.Itoa(status) + " error"
	}

	return e
}

// ParseRetryAfter parses a Retry-After header value in either delay-seconds
// or HTTP-date form. Hints above one hour are capped; unparsable or
// non-positive values yield zero.
func ParseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if seconds <= 0 {
			return 0
		}
		delay := time.Duration(seconds) * time.Second
		if delay > maxRetryAfter {
			delay = maxRetryAfter
		}
		return delay
	}

	if t, err := http.ParseTime(value); err == nil {
		delay := time.Until(t)
		if delay > 0 && delay <= maxRetryAfter {
			return delay
		}
	}

	return 0
}
