package web

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"property-marketplace/internal/config"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/repository"
	"property-marketplace/internal/usecase"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// Stub use cases with overridable func fields. Handlers under test only
// touch the funcs a given test sets.

type stubUserUC struct {
	RegisterFunc func(ctx context.Context, email, name, phone string, role model.Role) (*model.User, error)
	GetFunc      func(ctx context.Context, id string) (*model.User, error)
	ListFunc     func(ctx context.Context, offset, limit int) ([]*model.User, error)
}

var _ usecase.UserUseCase = (*stubUserUC)(nil)

func (s *stubUserUC) Register(ctx context.Context, email, name, phone string, role model.Role) (*model.User, error) {
	return s.RegisterFunc(ctx, email, name, phone, role)
}
func (s *stubUserUC) Get(ctx context.Context, id string) (*model.User, error) {
	return s.GetFunc(ctx, id)
}
func (s *stubUserUC) List(ctx context.Context, offset, limit int) ([]*model.User, error) {
	return s.ListFunc(ctx, offset, limit)
}

type stubPropertyUC struct {
	CreateFunc func(ctx context.Context, p *model.Property) (*model.Property, error)
	GetFunc    func(ctx context.Context, id string) (*model.Property, error)
	ListFunc   func(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error)
	UpdateFunc func(ctx context.Context, p *model.Property) error
	DeleteFunc func(ctx context.Context, id, requesterID string) error
}

var _ usecase.PropertyUseCase = (*stubPropertyUC)(nil)

func (s *stubPropertyUC) Create(ctx context.Context, p *model.Property) (*model.Property, error) {
	return s.CreateFunc(ctx, p)
}
func (s *stubPropertyUC) Get(ctx context.Context, id string) (*model.Property, error) {
	return s.GetFunc(ctx, id)
}
func (s *stubPropertyUC) List(ctx context.Context, f repository.PropertyFilter) ([]*model.Property, error) {
	return s.ListFunc(ctx, f)
}
func (s *stubPropertyUC) Update(ctx context.Context, p *model.Property) error {
	return s.UpdateFunc(ctx, p)
}
func (s *stubPropertyUC) Delete(ctx context.Context, id, requesterID string) error {
	return s.DeleteFunc(ctx, id, requesterID)
}

type stubReviewUC struct {
	AddFunc  func(ctx context.Context, propertyID, userID string, rating int, comment string) (*model.Review, error)
	ListFunc func(ctx context.Context, propertyID string, limit int) ([]*model.Review, error)
}

var _ usecase.ReviewUseCase = (*stubReviewUC)(nil)

func (s *stubReviewUC) Add(ctx context.Context, propertyID, userID string, rating int, comment string) (*model.Review, error) {
	return s.AddFunc(ctx, propertyID, userID, rating, comment)
}
func (s *stubReviewUC) ListByProperty(ctx context.Context, propertyID string, limit int) ([]*model.Review, error) {
	return s.ListFunc(ctx, propertyID, limit)
}

type stubSearchUC struct {
	SaveFunc   func(ctx context.Context, userID, name string, filters map[string]string) (*model.SavedSearch, error)
	ListFunc   func(ctx context.Context, userID string) ([]*model.SavedSearch, error)
	DeleteFunc func(ctx context.Context, id, userID string) error
}

var _ usecase.SavedSearchUseCase = (*stubSearchUC)(nil)

func (s *stubSearchUC) Save(ctx context.Context, userID, name string, filters map[string]string) (*model.SavedSearch, error) {
	return s.SaveFunc(ctx, userID, name, filters)
}
func (s *stubSearchUC) ListByUser(ctx context.Context, userID string) ([]*model.SavedSearch, error) {
	return s.ListFunc(ctx, userID)
}
func (s *stubSearchUC) Delete(ctx context.Context, id, userID string) error {
	return s.DeleteFunc(ctx, id, userID)
}

type stubApprovalUC struct {
	SubmitFunc      func(ctx context.Context, a *model.Approval) (*model.Approval, error)
	ListPendingFunc func(ctx context.Context) ([]*model.Approval, error)
	ApproveFunc     func(ctx context.Context, id string) (*model.User, error)
	RejectFunc      func(ctx context.Context, id, reason string) error
}

var _ usecase.ApprovalUseCase = (*stubApprovalUC)(nil)

func (s *stubApprovalUC) Submit(ctx context.Context, a *model.Approval) (*model.Approval, error) {
	return s.SubmitFunc(ctx, a)
}
func (s *stubApprovalUC) ListPending(ctx context.Context) ([]*model.Approval, error) {
	return s.ListPendingFunc(ctx)
}
func (s *stubApprovalUC) Approve(ctx context.Context, id string) (*model.User, error) {
	return s.ApproveFunc(ctx, id)
}
func (s *stubApprovalUC) Reject(ctx context.Context, id, reason string) error {
	return s.RejectFunc(ctx, id, reason)
}

type stubSubUC struct {
	GetByUserFunc func(ctx context.Context, userID string) (*model.Subscription, error)
	HasActiveFunc func(ctx context.Context, userID string) (bool, error)
	ListFunc      func(ctx context.Context, limit int) ([]*model.Subscription, error)
	CountFunc     func(ctx context.Context) (map[string]int, error)
}

var _ usecase.SubscriptionUseCase = (*stubSubUC)(nil)

func (s *stubSubUC) GetByUser(ctx context.Context, userID string) (*model.Subscription, error) {
	return s.GetByUserFunc(ctx, userID)
}
func (s *stubSubUC) HasActive(ctx context.Context, userID string) (bool, error) {
	return s.HasActiveFunc(ctx, userID)
}
func (s *stubSubUC) List(ctx context.Context, limit int) ([]*model.Subscription, error) {
	return s.ListFunc(ctx, limit)
}
func (s *stubSubUC) CountActiveByPlan(ctx context.Context) (map[string]int, error) {
	return s.CountFunc(ctx)
}

type stubPaymentUC struct {
	PayFunc      func(ctx context.Context, req *model.PaymentRequest) (model.PaymentResult, error)
	FinalizeFunc func(ctx context.Context, a *model.PendingAttempt) (model.PaymentResult, error)
	GetFunc      func(ctx context.Context, id string) (*model.Payment, error)
	ListFunc     func(ctx context.Context, userID string, limit int) ([]*model.Payment, error)
}

var _ usecase.PaymentUseCase = (*stubPaymentUC)(nil)

func (s *stubPaymentUC) Pay(ctx context.Context, req *model.PaymentRequest) (model.PaymentResult, error) {
	return s.PayFunc(ctx, req)
}
func (s *stubPaymentUC) FinalizePending(ctx context.Context, a *model.PendingAttempt) (model.PaymentResult, error) {
	return s.FinalizeFunc(ctx, a)
}
func (s *stubPaymentUC) Get(ctx context.Context, id string) (*model.Payment, error) {
	return s.GetFunc(ctx, id)
}
func (s *stubPaymentUC) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Payment, error) {
	return s.ListFunc(ctx, userID, limit)
}

type stubStatsUC struct {
	TotalsFunc  func(ctx context.Context) (int, map[string]int, error)
	RevenueFunc func(ctx context.Context) (float64, float64, float64, error)
}

var _ usecase.StatsUseCase = (*stubStatsUC)(nil)

func (s *stubStatsUC) Totals(ctx context.Context) (int, map[string]int, error) {
	return s.TotalsFunc(ctx)
}
func (s *stubStatsUC) Revenue(ctx context.Context) (float64, float64, float64, error) {
	return s.RevenueFunc(ctx)
}

type stubReferralUC struct {
	RecordFunc func(ctx context.Context, code, referredEmail string) (*model.Referral, error)
	ListFunc   func(ctx context.Context, code string, limit int) ([]*model.Referral, error)
}

var _ usecase.ReferralUseCase = (*stubReferralUC)(nil)

func (s *stubReferralUC) Record(ctx context.Context, code, referredEmail string) (*model.Referral, error) {
	return s.RecordFunc(ctx, code, referredEmail)
}
func (s *stubReferralUC) ListByCode(ctx context.Context, code string, limit int) ([]*model.Referral, error) {
	return s.ListFunc(ctx, code, limit)
}

type stubSettingsUC struct {
	GetFunc    func(ctx context.Context) (model.PlatformSettings, error)
	UpdateFunc func(ctx context.Context, s model.PlatformSettings) error
}

var _ usecase.SettingsUseCase = (*stubSettingsUC)(nil)

func (s *stubSettingsUC) Get(ctx context.Context) (model.PlatformSettings, error) {
	return s.GetFunc(ctx)
}
func (s *stubSettingsUC) Update(ctx context.Context, settings model.PlatformSettings) error {
	return s.UpdateFunc(ctx, settings)
}

// testDeps bundles fresh stubs plus a server wired with them.
type testDeps struct {
	users      *stubUserUC
	properties *stubPropertyUC
	reviews    *stubReviewUC
	searches   *stubSearchUC
	approvals  *stubApprovalUC
	subs       *stubSubUC
	payments   *stubPaymentUC
	stats      *stubStatsUC
	referrals  *stubReferralUC
	settings   *stubSettingsUC
	auth       *AuthManager
	srv        *Server
}

const (
	testAPIKey     = "test-key"
	testAdminEmail = "ops@example.com"
)

func newTestDeps() *testDeps {
	d := &testDeps{
		users:      &stubUserUC{},
		properties: &stubPropertyUC{},
		reviews:    &stubReviewUC{},
		searches:   &stubSearchUC{},
		approvals:  &stubApprovalUC{},
		subs:       &stubSubUC{},
		payments:   &stubPaymentUC{},
		stats:      &stubStatsUC{},
		referrals:  &stubReferralUC{},
		settings:   &stubSettingsUC{},
	}
	d.auth = NewAuthManager(config.AuthConfig{
		SessionSecret: "test-secret",
		SessionTTL:    30 * time.Minute,
		AdminEmail:    testAdminEmail,
	})
	d.srv = NewServer(d.users, d.properties, d.reviews, d.searches, d.approvals, d.subs, d.payments, d.stats, d.referrals, d.settings, d.auth, testAPIKey, newTestLogger())
	return d
}
