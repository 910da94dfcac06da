// Package constants names the request metadata shared by the HTTP and gRPC
// servers.
package constants

type contextKey string

// Header names double as gRPC metadata keys, which must be lower case.
const (
	HeaderXRequestId      = "x-request-id"
	HeaderXIdempotencyKey = "x-idempotency-key"
)

const (
	ContextKeyRequestID      contextKey = HeaderXRequestId
	ContextKeyIdempotencyKey contextKey = HeaderXIdempotencyKey
)
