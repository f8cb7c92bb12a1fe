package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/adapter"
)

// Ensure interface compliance at compile time
var _ adapter.ReceiptNotifier = (*WebhookNotifier)(nil)

// WebhookNotifier posts payment receipts to an external sender service
// (WhatsApp bridge, mail relay). Delivery is best effort.
type WebhookNotifier struct {
	url    string
	client *http.Client
	log    *zerolog.Logger
}

func NewWebhookNotifier(url string, timeout time.Duration, logger *zerolog.Logger) *WebhookNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	l := logger.With().Str("component", "webhook-notifier").Logger()
	return &WebhookNotifier{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    &l,
	}
}

type receiptPayload struct {
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone,omitempty"`
	PaymentID string    `json:"payment_id"`
	Reference string    `json:"reference"`
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	Plan      string    `json:"plan"`
	PaidAt    time.Time `json:"paid_at"`
}

func (n *WebhookNotifier) SendReceipt(ctx context.Context, user *model.User, payment *model.Payment) error {
	body, err := json.Marshal(receiptPayload{
		Email:     user.Email,
		FullName:  user.Name,
		Phone:     user.Phone,
		PaymentID: payment.ID,
		Reference: payment.ProviderRef,
		Amount:    payment.Amount,
		Currency:  payment.Currency,
		Plan:      string(payment.Plan),
		PaidAt:    payment.CreatedAt,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send receipt: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("send receipt: status %d", resp.StatusCode)
	}
	n.log.Debug().Str("payment_id", payment.ID).Msg("receipt delivered")
	return nil
}
