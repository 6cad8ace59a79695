package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"StorefrontAPI/internal/model"
)

type ResendMailer struct {
	apiKey  string
	from    string
	client  *http.Client
	baseURL string
}

func NewResendMailer(from string) (*ResendMailer, error) {
	key := os.Getenv("RESEND_API_KEY")
	if key == "" {
		return nil, errors.New("RESEND_API_KEY not set")
	}

	return &ResendMailer{
		apiKey: key,
		from:   from,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		baseURL: "https://api.resend.com",
	}, nil
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) SendOrderConfirmation(
	ctx context.Context,
	order *model.Order,
) error {
	body := sendRequest{
		From:    m.from,
		To:      []string{order.Customer.Email},
		Subject: fmt.Sprintf("Order confirmation %s", order.OrderID),
		HTML:    orderHTML(order),
	}

	b, _ := json.Marshal(body)

	req, _ := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		m.baseURL+"/emails",
		bytes.NewBuffer(b),
	)

	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		return errors.New(
			"failed to send order confirmation: " + buf.String(),
		)
	}

	return nil
}

func orderHTML(order *model.Order) string {
	var rows bytes.Buffer
	for _, it := range order.Items {
		fmt.Fprintf(&rows,
			"<tr><td>%s</td><td>%d</td><td>%s</td></tr>",
			it.ProductName, it.Quantity, formatAmount(it.TotalPrice, order.Currency),
		)
	}

	return fmt.Sprintf(`
		<p>Thanks for your order!</p>
		<p>Order <strong>%s</strong></p>
		<table>
			<tr><th>Item</th><th>Qty</th><th>Total</th></tr>
			%s
		</table>
		<p>Total: <strong>%s</strong></p>
	`, order.OrderID, rows.String(), formatAmount(order.Total, order.Currency))
}

func formatAmount(minor int64, currency string) string {
	if currency == "" {
		currency = "usd"
	}
	return fmt.Sprintf("%.2f %s", float64(minor)/100, currency)
}
