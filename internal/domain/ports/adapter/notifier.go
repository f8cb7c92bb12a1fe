package adapter

import (
	"context"

	"property-marketplace/internal/domain/model"
)

// ReceiptNotifier delivers a payment receipt out of band (WhatsApp message,
// invoice email). Fire-and-forget: delivery failures are logged by the
// caller at warn level and never affect the payment outcome.
type ReceiptNotifier interface {
	SendReceipt(ctx context.Context, user *model.User, payment *model.Payment) error
}
