// Package interceptors holds the gRPC interceptors shared by the servers.
package interceptors

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/jcmexdev/fitforge-orders/internal/pkg/interceptors/constants"
)

// UnaryServerInterceptor moves the request id and idempotency key from the
// incoming metadata into the context and logs every call.
func UnaryServerInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		requestID := MetadataValue(ctx, constants.HeaderXRequestId)
		idempotencyKey := MetadataValue(ctx, constants.HeaderXIdempotencyKey)

		ctx = context.WithValue(ctx, constants.ContextKeyRequestID, requestID)
		ctx = context.WithValue(ctx, constants.ContextKeyIdempotencyKey, idempotencyKey)

		start := time.Now()
		resp, err := handler(ctx, req)

		slog.InfoContext(ctx, "grpc call",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration", time.Since(start),
			"request_id", requestID,
			"idempotency_key", idempotencyKey,
		)
		return resp, err
	}
}

// MetadataValue returns the first incoming metadata value for key, or "".
func MetadataValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(key); len(vals) > 0 {
			return vals[0]
		}
	}
	return ""
}
