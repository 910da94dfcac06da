package domain

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in dashboard order.
var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus returns a validation error for anything outside the enum.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", Invalid("Invalid status")
	}
	return st, nil
}

// Transitions is the table consulted before a status change. A missing
// source entry means the source status may move anywhere.
type Transitions map[Status][]Status

// PermissiveTransitions allows any status to move to any other status.
var PermissiveTransitions = Transitions{}

// LifecycleTransitions treats delivered and cancelled as terminal.
var LifecycleTransitions = Transitions{
	StatusDelivered: {StatusDelivered},
	StatusCancelled: {StatusCancelled},
}

// Check returns ErrInvalidTransition when the table refuses from -> to.
func (t Transitions) Check(from, to Status) error {
	allowed, ok := t[from]
	if !ok {
		return nil
	}
	for _, s := range allowed {
		if s == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
