package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestServer_Check(t *testing.T) {
	var down bool
	s := NewServer("order-api", pingFunc(func(context.Context) error {
		if down {
			return errors.New("store unreachable")
		}
		return nil
	}))
	ctx := context.Background()

	resp, err := s.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	resp, err = s.Check(ctx, &healthpb.HealthCheckRequest{Service: "order-api"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())

	down = true
	resp, err = s.Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())

	_, err = s.Check(ctx, &healthpb.HealthCheckRequest{Service: "payments"})
	assert.Equal(t, codes.NotFound, status.Code(err))
}
