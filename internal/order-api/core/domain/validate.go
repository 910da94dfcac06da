package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ValidateContact checks the fields a notification needs: order number,
// a plausible email and at least one item.
func ValidateContact(o Order) error {
	if o.OrderNumber == "" {
		return Invalid("orderNumber is required")
	}
	if o.Email == "" {
		return Invalid("email is required")
	}
	if !strings.Contains(o.Email, "@") {
		return Invalid("Invalid customer email address")
	}
	if len(o.Items) == 0 {
		return Invalid("items must be a non-empty list")
	}
	return nil
}

// ValidateNew checks an order before its first write. With strictTotals the
// subtotal is recomputed from the items and total must equal it plus the
// delivery fee. A supplied subtotal must match too; an omitted one is not
// checked.
func ValidateNew(o Order, strictTotals bool) error {
	if err := ValidateContact(o); err != nil {
		return err
	}

	switch {
	case strings.TrimSpace(o.Name) == "":
		return Invalid("name is required")
	case strings.TrimSpace(o.Phone) == "":
		return Invalid("phone is required")
	case strings.TrimSpace(o.Address) == "":
		return Invalid("address is required")
	case strings.TrimSpace(o.PaymentMethod) == "":
		return Invalid("paymentMethod is required")
	}

	for i, it := range o.Items {
		if it.Price <= 0 || it.Quantity <= 0 {
			return Invalid(fmt.Sprintf("items[%d]: price and quantity must be positive", i))
		}
	}

	if o.DeliveryFee < 0 {
		return Invalid("deliveryFee must not be negative")
	}

	if !strictTotals {
		return nil
	}

	subtotal := itemsSubtotal(o.Items)
	if o.Subtotal != 0 && !subtotal.Equal(money(o.Subtotal)) {
		return Invalid(fmt.Sprintf("subtotal mismatch: expected %s", subtotal.StringFixed(2)))
	}
	total := subtotal.Add(money(o.DeliveryFee))
	if !total.Equal(money(o.Total)) {
		return Invalid(fmt.Sprintf("total mismatch: expected %s", total.StringFixed(2)))
	}
	return nil
}

// ItemsSubtotal is the sum of price times quantity over items, rounded to
// cents.
func ItemsSubtotal(items []LineItem) float64 {
	f, _ := itemsSubtotal(items).Float64()
	return f
}

func itemsSubtotal(items []LineItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Price).Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return subtotal.Round(2)
}

func money(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
