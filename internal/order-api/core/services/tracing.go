package services

import "go.opentelemetry.io/otel"

var tracer = otel.Tracer("github.com/jcmexdev/fitforge-orders/internal/order-api/core/services")
