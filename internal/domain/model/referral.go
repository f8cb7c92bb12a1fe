package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"property-marketplace/internal/domain"
)

// Referral records that an existing member's code brought in a new signup.
type Referral struct {
	ID            string
	Code          string
	ReferredEmail string
	CreatedAt     time.Time
}

func NewReferral(code, referredEmail string) (*Referral, error) {
	code = strings.TrimSpace(code)
	referredEmail = strings.TrimSpace(referredEmail)
	if code == "" || referredEmail == "" {
		return nil, domain.ErrInvalidArgument
	}
	return &Referral{
		ID:            uuid.NewString(),
		Code:          code,
		ReferredEmail: referredEmail,
		CreatedAt:     time.Now(),
	}, nil
}
