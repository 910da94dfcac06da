package interceptors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/fitforge-orders/internal/pkg/interceptors/constants"
)

func TestUnaryServerInterceptor(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(
		constants.HeaderXRequestId, "req-9",
		constants.HeaderXIdempotencyKey, "idem-9",
	))

	var gotReq, gotKey string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		gotReq, _ = ctx.Value(constants.ContextKeyRequestID).(string)
		gotKey, _ = ctx.Value(constants.ContextKeyIdempotencyKey).(string)
		return "ok", nil
	}

	resp, err := UnaryServerInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}, handler)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Equal(t, "req-9", gotReq)
	assert.Equal(t, "idem-9", gotKey)
}

func TestMetadataValue_Missing(t *testing.T) {
	assert.Empty(t, MetadataValue(context.Background(), constants.HeaderXRequestId))
}
