package model

import (
	"time"

	"github.com/google/uuid"

	"property-marketplace/internal/domain"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Approval is a professional-account application awaiting admin review.
// Approving one creates the user account with approval_status=approved and a
// trial subscription status.
type Approval struct {
	ID            string
	ApplicantName string
	Email         string
	Phone         string
	Role          Role
	Company       string
	License       string
	Experience    string
	Status        ApprovalStatus
	RejectReason  string
	SubmittedAt   time.Time
}

func NewApproval(applicantName, email, phone string, role Role) (*Approval, error) {
	if applicantName == "" || email == "" || !role.IsProfessional() {
		return nil, domain.ErrInvalidArgument
	}
	return &Approval{
		ID:            uuid.NewString(),
		ApplicantName: applicantName,
		Email:         email,
		Phone:         phone,
		Role:          role,
		Status:        ApprovalPending,
		SubmittedAt:   time.Now(),
	}, nil
}
