package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// Client wraps the two gateway operations the booking engine needs: order
// creation and signature verification. Receipt uniqueness is advisory; the
// gateway does not enforce it.
type Client struct {
	rz     *razorpay.Client
	secret string
}

func NewClient(keyID, keySecret string, timeout time.Duration) *Client {
	c := razorpay.NewClient(keyID, keySecret)
	if timeout > 0 {
		c.SetTimeout(int16(timeout / time.Second))
	}
	return &Client{rz: c, secret: keySecret}
}

func (c *Client) CreateOrder(ctx context.Context, amountMinor int, currency, receipt string) (string, error) {
	data := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}
	body, err := c.rz.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay create order: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return "", errors.New("razorpay create order: missing order id in response")
	}
	return id, nil
}

func (c *Client) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, c.secret)
}
