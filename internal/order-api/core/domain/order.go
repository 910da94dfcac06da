package domain

import (
	"sort"
	"time"
)

// Customer holds the contact details captured at checkout. On the wire and in
// the document store the fields sit flat on the order.
type Customer struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
}

type Order struct {
	OrderNumber   string `json:"orderNumber" bson:"orderNumber"`
	Customer      `bson:",inline"`
	PaymentMethod string     `json:"paymentMethod" bson:"paymentMethod"`
	BankProof     string     `json:"bankProof,omitempty" bson:"bankProof,omitempty"`
	Items         []LineItem `json:"items" bson:"items"`
	Subtotal      float64    `json:"subtotal" bson:"subtotal"`
	DeliveryFee   float64    `json:"deliveryFee" bson:"deliveryFee"`
	Total         float64    `json:"total" bson:"total"`
	Status        Status     `json:"status" bson:"status"`
	Date          time.Time  `json:"date" bson:"date"`
	CreatedAt     time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type LineItem struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Image    string  `json:"image,omitempty" bson:"image,omitempty"`
	Size     string  `json:"size,omitempty" bson:"size,omitempty"`
	Category string  `json:"category,omitempty" bson:"category,omitempty"`
}

func (i LineItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

// ItemNames joins the line item names the way the admin dashboard lists them.
func (o Order) ItemNames() string {
	var out string
	for i, it := range o.Items {
		if i > 0 {
			out += ", "
		}
		out += it.Name
	}
	return out
}

// SortNewestFirst orders by date descending, keeping the input order for
// equal dates.
func SortNewestFirst(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date.After(orders[j].Date)
	})
}
