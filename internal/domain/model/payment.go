package model

import (
	"time"

	"property-marketplace/internal/domain"
)

// PaymentMethod is the channel category offered to the gateway.
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodMobile PaymentMethod = "mobile"
)

// PaymentStatus is the status of a stored payment row. Rows only exist for
// charges the provider has verified as settled, so completed is the one
// value written; attempts that are still pending live in the pending attempt
// store instead.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
)

// PaymentRequest describes one attempted charge. It is ephemeral; nothing is
// persisted until the provider has verified the charge as settled.
type PaymentRequest struct {
	UserID   string
	Amount   float64 // platform currency units, e.g. ZMW
	Currency string
	Plan     PlanCadence
	Role     Role
	Method   PaymentMethod
	// Metadata feeds the gateway customer fields: email, firstName,
	// lastName, userName, phone, reference.
	Metadata map[string]string
}

// Validate rejects requests before any network call is made.
func (r *PaymentRequest) Validate() error {
	if r == nil || r.UserID == "" || r.Amount <= 0 {
		return domain.ErrInvalidArgument
	}
	return nil
}

// CheckoutStatus is the three-way terminal state of the hosted widget.
type CheckoutStatus string

const (
	CheckoutSuccess   CheckoutStatus = "success"
	CheckoutPending   CheckoutStatus = "pending"
	CheckoutCancelled CheckoutStatus = "cancelled"
)

// CheckoutOutcome is created when the widget invokes one of its terminal
// callbacks and never mutated afterwards.
type CheckoutOutcome struct {
	Status    CheckoutStatus
	Reference string
}

// VerifyStatus is the four-way result of asking the provider's authoritative
// status endpoint about a reference.
type VerifyStatus string

const (
	VerifySuccess VerifyStatus = "success"
	VerifyPending VerifyStatus = "pending"
	VerifyFailed  VerifyStatus = "failed"
	VerifyError   VerifyStatus = "error"
)

// VerificationOutcome carries the provider's answer. Amount and Currency may
// be absent for some channels (mobile-money in particular). Raw keeps the
// provider payload for audit; it is never discarded on the failure path.
type VerificationOutcome struct {
	Status   VerifyStatus
	Amount   *float64
	Currency string
	Raw      []byte
}

// Payment is the durable record of a verified charge. Rows are immutable
// once written; ProviderRef carries a unique constraint and acts as the
// idempotency key against duplicate gateway callbacks.
type Payment struct {
	ID          string
	UserID      string
	Amount      float64
	Currency    string
	Method      PaymentMethod
	Status      PaymentStatus
	ProviderRef string
	Plan        PlanCadence
	Role        Role
	CreatedAt   time.Time
}

// ResultStatus is the one value the reconciler's caller observes.
type ResultStatus string

const (
	ResultSucceeded ResultStatus = "succeeded"
	ResultFailed    ResultStatus = "failed"
	ResultPending   ResultStatus = "pending"
	ResultCancelled ResultStatus = "cancelled"
)

// PaymentResult is the uniform outcome returned to the UI. The caller
// branches on Status: succeeded shows a receipt link, pending an
// informational notice, cancelled a neutral message, failed a retry prompt.
type PaymentResult struct {
	Status    ResultStatus `json:"status"`
	PaymentID string       `json:"paymentId,omitempty"`
	Reference string       `json:"reference,omitempty"`
}
