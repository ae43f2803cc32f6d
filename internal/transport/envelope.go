package transport

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/polarisapp/client-go/internal/apierrors"
)

// ErrNoData is returned by Envelope.Unwrap when a success envelope carries
// no data payload.
var ErrNoData = errors.New("polaris: success response contains no data")

// Meta carries the envelope metadata attached to every API response.
type Meta struct {
	RequestID string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

// ErrorDetail is the error variant payload of the wire envelope.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// Envelope is the discriminated wire wrapper around every API payload.
// Callers branch on Success: business failures arrive as Success=false
// envelopes, not as Go errors. Status records the HTTP status the envelope
// arrived with (zero when constructed locally).
type Envelope[T any] struct {
	Success bool         `json:"success"`
	Data    T            `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
	Meta    Meta         `json:"meta"`
	Status  int          `json:"-"`

	hasData bool
}

// Page is the paginated data variant nested inside a success envelope.
type Page[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
	TotalCount *int   `json:"totalCount,omitempty"`
}

// rawEnvelope defers data decoding so presence can be distinguished from a
// zero value.
type rawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorDetail    `json:"error"`
	Meta    Meta            `json:"meta"`
}

// looksLikeEnvelope reports whether body is a JSON object carrying a boolean
// success discriminant.
func looksLikeEnvelope(body []byte) bool {
	var probe struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	return probe.Success != nil
}

// decodeEnvelope parses body into a typed envelope, tracking whether the
// data field was present.
func decodeEnvelope[T any](body []byte, status int) (*Envelope[T], error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	env := &Envelope[T]{
		Success: raw.Success,
		Error:   raw.Error,
		Meta:    raw.Meta,
		Status:  status,
	}
	if len(raw.Data) > 0 && string(raw.Data) != "null" {
		if err := json.Unmarshal(raw.Data, &env.Data); err != nil {
			return nil, err
		}
		env.hasData = true
	}
	return env, nil
}

// successEnvelope wraps a bare (non-envelope) payload so typed calls always
// hand back the same shape.
func successEnvelope[T any](data T, status int) *Envelope[T] {
	return &Envelope[T]{
		Success: true,
		Data:    data,
		Status:  status,
		hasData: true,
	}
}

// HasData reports whether the envelope's data field was present on the wire.
func (e *Envelope[T]) HasData() bool {
	return e.hasData
}

// Unwrap is the back-compat shim over the pass-through contract: it returns
// the data payload of a success envelope, or a classified taxonomy error for
// an error envelope. A success envelope without data yields ErrNoData.
func (e *Envelope[T]) Unwrap() (T, error) {
	var zero T
	if !e.Success {
		status := e.Status
		var body []byte
		if e.Error != nil {
			body, _ = json.Marshal(rawEnvelope{Success: false, Error: e.Error})
		}
		return zero, apierrors.Classify(status, body, e.Meta.RequestID)
	}
	if !e.hasData {
		return zero, ErrNoData
	}
	return e.Data, nil
}
