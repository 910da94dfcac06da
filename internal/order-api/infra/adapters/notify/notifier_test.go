package notify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

type fakeSender struct {
	name string
	// failTo lists recipients this sender refuses; "*" refuses everyone.
	failTo map[string]bool

	mu   sync.Mutex
	sent []ports.Message
}

func newFakeSender(name string, failTo ...string) *fakeSender {
	s := &fakeSender{name: name, failTo: map[string]bool{}}
	for _, to := range failTo {
		s.failTo[to] = true
	}
	return s
}

func (s *fakeSender) Name() string { return s.name }

func (s *fakeSender) Send(_ context.Context, msg ports.Message) error {
	if s.failTo["*"] || s.failTo[msg.To[0]] {
		return errors.New(s.name + " unavailable")
	}
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()
	return nil
}

func (s *fakeSender) messages() []ports.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ports.Message(nil), s.sent...)
}

func testOrder() domain.Order {
	return domain.Order{
		OrderNumber: "FF-250310-1234",
		Customer: domain.Customer{
			Name: "Ayesha Khan", Email: "ayesha@example.com", Phone: "03001234567", Address: "House 7, Lahore",
		},
		PaymentMethod: "Bank Transfer",
		BankProof:     "TX-998",
		Items: []domain.LineItem{
			{Name: "Crop Top White", Price: 1500, Quantity: 2, Size: "S"},
		},
		Subtotal:    3000,
		DeliveryFee: 200,
		Total:       3200,
		Date:        time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func newTestNotifier(primary, fallback ports.Sender) *Notifier {
	return NewNotifier(primary, fallback, Config{
		From:          "FitForge <orders@fitforge.test>",
		FallbackFrom:  "onboarding@fallback.test",
		BusinessEmail: "shop@fitforge.test",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNotifier_NotifyOrder(t *testing.T) {
	tests := []struct {
		name         string
		primaryFails []string
		fallbackFail []string
		wantBusiness domain.Outcome
		wantCustomer domain.Outcome
		wantSuccess  bool
	}{
		{
			name:         "primary delivers both",
			wantBusiness: domain.OutcomeDelivered,
			wantCustomer: domain.OutcomeDelivered,
			wantSuccess:  true,
		},
		{
			name:         "customer falls back",
			primaryFails: []string{"ayesha@example.com"},
			wantBusiness: domain.OutcomeDelivered,
			wantCustomer: domain.OutcomeDeliveredFallback,
			wantSuccess:  true,
		},
		{
			name:         "customer lost entirely",
			primaryFails: []string{"ayesha@example.com"},
			fallbackFail: []string{"*"},
			wantBusiness: domain.OutcomeDelivered,
			wantCustomer: domain.OutcomeFailed,
			wantSuccess:  true,
		},
		{
			name:         "business lost entirely",
			primaryFails: []string{"*"},
			fallbackFail: []string{"shop@fitforge.test"},
			wantBusiness: domain.OutcomeFailed,
			wantCustomer: domain.OutcomeDeliveredFallback,
			wantSuccess:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTestNotifier(newFakeSender("primary", tt.primaryFails...), newFakeSender("fallback", tt.fallbackFail...))

			report := n.NotifyOrder(context.Background(), testOrder())

			assert.Equal(t, "FF-250310-1234", report.OrderNumber)
			assert.Equal(t, tt.wantBusiness, report.Business)
			assert.Equal(t, tt.wantCustomer, report.Customer)
			assert.Equal(t, tt.wantSuccess, report.Success())
		})
	}
}

func TestNotifier_FallbackUsesFallbackSender(t *testing.T) {
	primary := newFakeSender("primary", "*")
	fallback := newFakeSender("fallback")
	n := newTestNotifier(primary, fallback)

	n.NotifyOrder(context.Background(), testOrder())

	msgs := fallback.messages()
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Equal(t, "onboarding@fallback.test", m.From)
	}
}

func TestNotifier_NotifyOrderFallbackSkipsPrimary(t *testing.T) {
	primary := newFakeSender("primary")
	fallback := newFakeSender("fallback")
	n := newTestNotifier(primary, fallback)

	report := n.NotifyOrderFallback(context.Background(), testOrder())

	assert.Empty(t, primary.messages())
	assert.Len(t, fallback.messages(), 2)
	assert.Equal(t, domain.OutcomeDeliveredFallback, report.Business)
	assert.Equal(t, domain.OutcomeDeliveredFallback, report.Customer)
}

func TestNotifier_SendTest(t *testing.T) {
	primary := newFakeSender("primary")
	n := newTestNotifier(primary, newFakeSender("fallback"))

	require.NoError(t, n.SendTest(context.Background(), "admin@example.com"))
	require.Len(t, primary.messages(), 1)
	assert.Equal(t, []string{"admin@example.com"}, primary.messages()[0].To)

	err := n.SendTest(context.Background(), "not-an-address")
	assert.ErrorIs(t, err, domain.ErrValidation)

	failing := newTestNotifier(newFakeSender("primary", "*"), newFakeSender("fallback"))
	err = failing.SendTest(context.Background(), "admin@example.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestNewNotifier_PanicsOnNilSender(t *testing.T) {
	assert.Panics(t, func() { NewNotifier(nil, newFakeSender("fallback"), Config{}, nil) })
}
