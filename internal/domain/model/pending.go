package model

import "time"

// PendingAttempt captures a checkout that ended in deferred confirmation
// (asynchronous mobile-money authorization). Nothing is written to the
// payments store until the provider verifies the charge; the attempt is
// parked here so the background sweep can finalize it later.
type PendingAttempt struct {
	Reference string            `json:"reference"`
	UserID    string            `json:"user_id"`
	Amount    float64           `json:"amount"`
	Currency  string            `json:"currency"`
	Method    PaymentMethod     `json:"method"`
	Plan      PlanCadence       `json:"plan"`
	Role      Role              `json:"role"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}
