package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/domain"
	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

var funcs = template.FuncMap{
	"rs": func(v float64) string { return fmt.Sprintf("Rs%.2f", v) },
	"size": func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	},
}

var businessTmpl = template.Must(template.New("business").Funcs(funcs).Parse(`
<h2>New Order Received</h2>
<p><b>Order Number:</b> {{.OrderNumber}}</p>
<p><b>Date:</b> {{.Date}}</p>
<p><b>Name:</b> {{.Name}}</p>
<p><b>Email:</b> {{.Email}}</p>
<p><b>Phone:</b> {{.Phone}}</p>
<p><b>Address:</b> {{.Address}}</p>
<p><b>Payment:</b> {{.PaymentMethod}}</p>
{{template "summary" .}}`))

var customerTmpl = template.Must(template.New("customer").Funcs(funcs).Parse(`
<h2>Thank you for your order!</h2>
<p>Your order has been received and is being processed.</p>
<p><b>Order Number:</b> {{.OrderNumber}}</p>
<p><b>Date:</b> {{.Date}}</p>
{{template "summary" .}}
<p>We will contact you soon for confirmation and shipping details.</p>
<p>If you have any questions, contact us at {{.Contact}}.</p>`))

const summaryTmpl = `{{define "summary"}}
<h3>Order Summary</h3>
<ul>{{range .Items}}<li>{{.Name}} x{{.Quantity}} (Size: {{size .Size}}) - {{rs .Subtotal}}</li>{{end}}</ul>
<p><b>Subtotal:</b> {{rs .Subtotal}}</p>
{{if gt .DeliveryFee 0.0}}<p><b>Delivery Fee:</b> {{rs .DeliveryFee}}</p>{{end}}
<p><b>Total:</b> {{rs .Total}}</p>
{{if .BankProof}}<p><b>Payment Reference:</b> {{.BankProof}}</p>{{end}}
{{end}}`

func init() {
	template.Must(businessTmpl.Parse(summaryTmpl))
	template.Must(customerTmpl.Parse(summaryTmpl))
}

type view struct {
	domain.Order
	Date    string
	Contact string
}

// BusinessMessage is the new-order email sent to the shop inbox.
func BusinessMessage(o domain.Order, from, to string) (ports.Message, error) {
	body, err := render(businessTmpl, view{Order: o, Date: o.Date.Format(time.DateOnly), Contact: to})
	if err != nil {
		return ports.Message{}, err
	}
	return ports.Message{
		ID:      uuid.NewString(),
		From:    from,
		To:      []string{to},
		Subject: "New Order: " + o.OrderNumber,
		HTML:    body,
	}, nil
}

// CustomerMessage is the confirmation sent to the buyer. contact is the shop
// address quoted in the footer.
func CustomerMessage(o domain.Order, from, contact string) (ports.Message, error) {
	body, err := render(customerTmpl, view{Order: o, Date: o.Date.Format(time.DateOnly), Contact: contact})
	if err != nil {
		return ports.Message{}, err
	}
	return ports.Message{
		ID:      uuid.NewString(),
		From:    from,
		To:      []string{o.Email},
		Subject: "Your Order Confirmation: " + o.OrderNumber,
		HTML:    body,
	}, nil
}

// TestMessage is the fixed message sent by the admin test endpoint.
func TestMessage(from, to string) ports.Message {
	return ports.Message{
		ID:      uuid.NewString(),
		From:    from,
		To:      []string{to},
		Subject: "FitForge test email",
		HTML:    "<p>This is a test email from the FitForge order API.</p>",
	}
}

func render(t *template.Template, v view) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("notify: render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}
