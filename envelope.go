package polaris

import (
	"github.com/polarisapp/client-go/internal/transport"
)

// Envelope is the discriminated wire wrapper around every API payload.
// Service methods return it unmodified (pass-through): branch on Success to
// distinguish business outcomes, and rely on the returned error only for
// transport-level failures. Unwrap() converts an envelope to the legacy
// data-or-error contract.
type Envelope[T any] = transport.Envelope[T]

// Meta carries the request metadata attached to every API response.
type Meta = transport.Meta

// ErrorDetail is the error variant payload of the wire envelope.
type ErrorDetail = transport.ErrorDetail

// Page is the paginated data variant nested inside a success envelope.
type Page[T any] = transport.Page[T]

// CallOptions tune a single request: extra headers, a per-request timeout
// override, retry skipping, and tracing metadata.
type CallOptions = transport.CallOptions
