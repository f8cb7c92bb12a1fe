package usecase

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
)

// Compile-time check
var _ ApprovalUseCase = (*approvalUC)(nil)

// ApprovalUseCase runs the professional-account approval workflow: an
// applicant submits, an admin approves or rejects, and approval creates the
// user account on a trial subscription status.
type ApprovalUseCase interface {
	Submit(ctx context.Context, a *model.Approval) (*model.Approval, error)
	ListPending(ctx context.Context) ([]*model.Approval, error)
	Approve(ctx context.Context, id string) (*model.User, error)
	Reject(ctx context.Context, id, reason string) error
}

type approvalUC struct {
	approvals repository.ApprovalRepository
	users     repository.UserRepository
	tm        repository.TransactionManager
	log       *zerolog.Logger
}

func NewApprovalUseCase(approvals repository.ApprovalRepository, users repository.UserRepository, tm repository.TransactionManager, logger *zerolog.Logger) *approvalUC {
	return &approvalUC{approvals: approvals, users: users, tm: tm, log: logger}
}

func (u *approvalUC) Submit(ctx context.Context, a *model.Approval) (*model.Approval, error) {
	if a == nil || a.ApplicantName == "" || a.Email == "" || !a.Role.IsProfessional() {
		return nil, domain.ErrInvalidArgument
	}
	if a.Status == "" {
		a.Status = model.ApprovalPending
	}
	if err := u.approvals.Save(ctx, nil, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (u *approvalUC) ListPending(ctx context.Context) ([]*model.Approval, error) {
	return u.approvals.ListPending(ctx, nil)
}

// Approve flips the application and creates the account in one transaction
// so a crash between the two cannot approve without an account.
func (u *approvalUC) Approve(ctx context.Context, id string) (*model.User, error) {
	var created *model.User
	err := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		a, err := u.approvals.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if a.Status != model.ApprovalPending {
			return domain.ErrInvalidArgument
		}
		if err := u.approvals.UpdateStatus(ctx, tx, id, model.ApprovalApproved, ""); err != nil {
			return err
		}
		user, err := model.NewUser("", a.Email, a.ApplicantName, a.Role)
		if err != nil {
			return err
		}
		user.Phone = a.Phone
		if err := u.users.Save(ctx, tx, user); err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.log.Info().Str("approval_id", id).Str("user_id", created.ID).Str("role", string(created.Role)).
		Msg("professional account approved")
	return created, nil
}

func (u *approvalUC) Reject(ctx context.Context, id, reason string) error {
	a, err := u.approvals.FindByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if a.Status != model.ApprovalPending {
		return domain.ErrInvalidArgument
	}
	return u.approvals.UpdateStatus(ctx, nil, id, model.ApprovalRejected, reason)
}
