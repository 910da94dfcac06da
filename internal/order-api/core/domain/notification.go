package domain

// Outcome is the delivery result of a single notification.
type Outcome string

const (
	OutcomeDelivered         Outcome = "delivered"
	OutcomeDeliveredFallback Outcome = "delivered_via_fallback"
	OutcomeFailed            Outcome = "failed"
)

// NotificationReport describes what happened to the business and customer
// emails of one order.
type NotificationReport struct {
	OrderNumber string  `json:"orderNumber"`
	Business    Outcome `json:"business"`
	Customer    Outcome `json:"customer"`
}

// Success reports whether the business received the order, which is what
// the storefront treats as a placed order notification.
func (r NotificationReport) Success() bool {
	return r.Business != OutcomeFailed
}
