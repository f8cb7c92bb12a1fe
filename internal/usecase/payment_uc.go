package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/adapter"
	"property-marketplace/internal/domain/ports/repository"
	"property-marketplace/internal/infra/metrics"
)

// Compile-time check
var _ PaymentUseCase = (*paymentUC)(nil)

// PaymentUseCase orchestrates one payment attempt end to end: hosted
// checkout, server-side verification, durable recording, and subscription
// extension. The returned PaymentResult is the only thing the UI observes.
type PaymentUseCase interface {
	// Pay drives checkout → verify → record → extend for a single attempt.
	// The result always carries one of the four terminal statuses; the
	// error return is non-nil only for domain.ErrRecordingFailed, where a
	// verified charge could not be written locally.
	Pay(ctx context.Context, req *model.PaymentRequest) (model.PaymentResult, error)
	// FinalizePending re-verifies a parked attempt (deferred mobile-money
	// confirmation) and completes it through the same settlement path.
	FinalizePending(ctx context.Context, attempt *model.PendingAttempt) (model.PaymentResult, error)
	Get(ctx context.Context, id string) (*model.Payment, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*model.Payment, error)
}

// PaymentPolicy bundles the tunables of the flow. AmountEpsilon is the
// tolerance for the provider-reported amount; a verified success whose amount
// disagrees beyond it is downgraded to failed.
type PaymentPolicy struct {
	PublicKey       string
	Currency        string
	AmountEpsilon   float64
	CheckoutTimeout time.Duration
	VerifyTimeout   time.Duration
	PendingTTL      time.Duration
	LockTTL         time.Duration
}

type paymentUC struct {
	payments repository.PaymentRepository
	subs     repository.SubscriptionRepository
	users    repository.UserRepository
	pending  repository.PendingAttemptRepository
	gateway  adapter.CheckoutGateway
	verifier adapter.PaymentVerifier
	notifier adapter.ReceiptNotifier // optional
	locker   adapter.Locker
	tm       repository.TransactionManager
	policy   PaymentPolicy
	now      func() time.Time
	log      *zerolog.Logger
}

func NewPaymentUseCase(
	payments repository.PaymentRepository,
	subs repository.SubscriptionRepository,
	users repository.UserRepository,
	pending repository.PendingAttemptRepository,
	gateway adapter.CheckoutGateway,
	verifier adapter.PaymentVerifier,
	notifier adapter.ReceiptNotifier,
	locker adapter.Locker,
	tm repository.TransactionManager,
	policy PaymentPolicy,
	logger *zerolog.Logger,
) *paymentUC {
	if policy.AmountEpsilon <= 0 {
		policy.AmountEpsilon = 0.01
	}
	if policy.CheckoutTimeout <= 0 {
		policy.CheckoutTimeout = 5 * time.Minute
	}
	if policy.VerifyTimeout <= 0 {
		policy.VerifyTimeout = 15 * time.Second
	}
	if policy.PendingTTL <= 0 {
		policy.PendingTTL = 24 * time.Hour
	}
	if policy.LockTTL <= 0 {
		policy.LockTTL = 30 * time.Second
	}
	return &paymentUC{
		payments: payments,
		subs:     subs,
		users:    users,
		pending:  pending,
		gateway:  gateway,
		verifier: verifier,
		notifier: notifier,
		locker:   locker,
		tm:       tm,
		policy:   policy,
		now:      time.Now,
		log:      logger,
	}
}

func (u *paymentUC) Pay(ctx context.Context, req *model.PaymentRequest) (model.PaymentResult, error) {
	if err := req.Validate(); err != nil {
		// Rejected before any network call; no reference exists yet.
		metrics.IncPayment(string(model.ResultFailed))
		return model.PaymentResult{Status: model.ResultFailed}, nil
	}

	email := strings.TrimSpace(req.Metadata["email"])
	if u.policy.PublicKey == "" || email == "" {
		u.log.Warn().Str("user_id", req.UserID).Msg("payment rejected: missing public key or payer email")
		metrics.IncPayment(string(model.ResultFailed))
		return model.PaymentResult{Status: model.ResultFailed}, nil
	}

	reference := u.buildReference(req)
	opts := adapter.CheckoutOptions{
		PublicKey: u.policy.PublicKey,
		Reference: reference,
		Email:     email,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Channels:  channelsFor(req.Method),
		Customer:  customerFor(req.Metadata),
	}

	checkoutCtx, cancel := context.WithTimeout(ctx, u.policy.CheckoutTimeout)
	defer cancel()
	started := u.now()
	outcome, err := u.gateway.OpenCheckout(checkoutCtx, opts)
	metrics.ObserveCheckout(checkoutStatus(outcome, err), u.now().Sub(started))
	if err != nil {
		u.log.Error().Err(err).Str("reference", reference).Msg("checkout failed")
		metrics.IncPayment(string(model.ResultFailed))
		return model.PaymentResult{Status: model.ResultFailed, Reference: reference}, nil
	}

	switch outcome.Status {
	case model.CheckoutCancelled:
		metrics.IncPayment(string(model.ResultCancelled))
		return model.PaymentResult{Status: model.ResultCancelled, Reference: outcome.Reference}, nil
	case model.CheckoutPending:
		u.parkPending(ctx, req, outcome.Reference)
		metrics.IncPayment(string(model.ResultPending))
		return model.PaymentResult{Status: model.ResultPending, Reference: outcome.Reference}, nil
	}

	res, err := u.settle(ctx, attemptFromRequest(req, outcome.Reference, u.now()))
	metrics.IncPayment(string(res.Status))
	return res, err
}

func (u *paymentUC) FinalizePending(ctx context.Context, attempt *model.PendingAttempt) (model.PaymentResult, error) {
	if attempt == nil || attempt.Reference == "" {
		return model.PaymentResult{Status: model.ResultFailed}, domain.ErrInvalidArgument
	}
	return u.settle(ctx, attempt)
}

// settle runs verification and, on a verified success, records the payment
// and extends the subscription inside one transaction. A per-user lock
// serializes concurrent settlements for the same user.
func (u *paymentUC) settle(ctx context.Context, attempt *model.PendingAttempt) (model.PaymentResult, error) {
	lockKey := "payment:lock:" + attempt.UserID
	token, err := u.locker.TryLock(ctx, lockKey, u.policy.LockTTL)
	if err != nil {
		u.log.Warn().Err(err).Str("user_id", attempt.UserID).Str("reference", attempt.Reference).
			Msg("could not acquire payment lock")
		return model.PaymentResult{Status: model.ResultFailed, Reference: attempt.Reference}, nil
	}
	defer func() {
		if uerr := u.locker.Unlock(ctx, lockKey, token); uerr != nil {
			u.log.Warn().Err(uerr).Str("key", lockKey).Msg("payment lock release failed")
		}
	}()

	verifyCtx, cancel := context.WithTimeout(ctx, u.policy.VerifyTimeout)
	defer cancel()
	started := u.now()
	vo, err := u.verifier.Verify(verifyCtx, attempt.Reference)
	metrics.ObserveVerify(verifyOutcome(vo, err), u.now().Sub(started))
	if err != nil {
		u.log.Error().Err(err).Str("reference", attempt.Reference).Msg("verification call failed")
		return model.PaymentResult{Status: model.ResultFailed, Reference: attempt.Reference}, nil
	}

	switch vo.Status {
	case model.VerifyPending:
		u.parkAttempt(ctx, attempt)
		return model.PaymentResult{Status: model.ResultPending, Reference: attempt.Reference}, nil
	case model.VerifyFailed, model.VerifyError:
		u.log.Warn().Str("reference", attempt.Reference).RawJSON("provider_payload", jsonOrNull(vo.Raw)).
			Msg("verification did not confirm settlement")
		return model.PaymentResult{Status: model.ResultFailed, Reference: attempt.Reference}, nil
	}

	if !u.amountsMatch(vo.Amount, attempt.Amount) {
		u.log.Warn().Str("reference", attempt.Reference).Float64("requested", attempt.Amount).
			RawJSON("provider_payload", jsonOrNull(vo.Raw)).
			Msg("verified amount disagrees with requested amount")
		return model.PaymentResult{Status: model.ResultFailed, Reference: attempt.Reference}, nil
	}

	return u.record(ctx, attempt, vo)
}

// record persists the verified payment, upserts the subscription, and marks
// the user active, all in one transaction. Every terminal state other than
// succeeded leaves subscription state untouched.
func (u *paymentUC) record(ctx context.Context, attempt *model.PendingAttempt, vo model.VerificationOutcome) (model.PaymentResult, error) {
	now := u.now()
	p := &model.Payment{
		ID:          uuid.NewString(),
		UserID:      attempt.UserID,
		Amount:      attempt.Amount,
		Currency:    attempt.Currency,
		Method:      attempt.Method,
		Status:      model.PaymentStatusCompleted,
		ProviderRef: attempt.Reference,
		Plan:        attempt.Plan,
		Role:        attempt.Role,
		CreatedAt:   now,
	}

	txErr := u.tm.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		if _, err := u.payments.Create(ctx, tx, p); err != nil {
			return err
		}
		sub := &model.Subscription{
			ID:               uuid.NewString(),
			UserID:           attempt.UserID,
			Role:             attempt.Role,
			Plan:             attempt.Plan,
			Status:           model.SubscriptionStatusActive,
			CurrentPeriodEnd: model.PeriodEnd(attempt.Plan, now),
			CreatedAt:        now,
		}
		if err := u.subs.Upsert(ctx, tx, sub); err != nil {
			return err
		}
		return u.users.UpdateSubscriptionStatus(ctx, tx, attempt.UserID, model.SubscriptionStatusActive)
	})

	if errors.Is(txErr, domain.ErrAlreadyExists) {
		// Duplicate gateway callback: the reference was already recorded
		// and the subscription already extended. Idempotent success.
		existing, err := u.payments.FindByProviderRef(ctx, nil, attempt.Reference)
		if err != nil {
			return model.PaymentResult{Status: model.ResultFailed, Reference: attempt.Reference},
				fmt.Errorf("%w: duplicate reference lookup: %v", domain.ErrRecordingFailed, err)
		}
		u.dropPending(ctx, attempt.Reference)
		return model.PaymentResult{Status: model.ResultSucceeded, PaymentID: existing.ID, Reference: attempt.Reference}, nil
	}
	if txErr != nil {
		// Money moved at the provider but the local record failed. Never
		// report succeeded; never stay silent either. The attempt stays
		// parked so the sweep retries the record.
		u.log.Error().Err(txErr).Str("reference", attempt.Reference).Str("user_id", attempt.UserID).
			RawJSON("provider_payload", jsonOrNull(vo.Raw)).
			Msg("verified payment could not be recorded")
		metrics.IncRecordingFailure()
		u.parkAttempt(ctx, attempt)
		return model.PaymentResult{Status: model.ResultFailed, Reference: attempt.Reference},
			fmt.Errorf("%w: %v", domain.ErrRecordingFailed, txErr)
	}

	metrics.AddPaymentRevenue(p.Currency, p.Amount)
	u.dropPending(ctx, attempt.Reference)
	u.notifyReceipt(ctx, p)

	return model.PaymentResult{Status: model.ResultSucceeded, PaymentID: p.ID, Reference: attempt.Reference}, nil
}

func (u *paymentUC) Get(ctx context.Context, id string) (*model.Payment, error) {
	return u.payments.FindByID(ctx, nil, id)
}

func (u *paymentUC) ListByUser(ctx context.Context, userID string, limit int) ([]*model.Payment, error) {
	return u.payments.ListByUser(ctx, nil, userID, limit)
}

// buildReference prefers a caller-supplied reference from metadata and
// otherwise mints `ref-<ulid>`.
func (u *paymentUC) buildReference(req *model.PaymentRequest) string {
	if ref := strings.TrimSpace(req.Metadata["reference"]); ref != "" {
		return ref
	}
	return "ref-" + ulid.Make().String()
}

func (u *paymentUC) amountsMatch(verified *float64, requested float64) bool {
	if verified == nil {
		// The provider omits the amount for some mobile-money channels;
		// there is nothing to compare against.
		return true
	}
	// A discrepancy up to and including the tolerance still matches; only
	// beyond it is the settle downgraded.
	diff := decimal.NewFromFloat(*verified).Sub(decimal.NewFromFloat(requested)).Abs()
	return diff.LessThanOrEqual(decimal.NewFromFloat(u.policy.AmountEpsilon))
}

func (u *paymentUC) parkPending(ctx context.Context, req *model.PaymentRequest, reference string) {
	u.parkAttempt(ctx, attemptFromRequest(req, reference, u.now()))
}

func (u *paymentUC) parkAttempt(ctx context.Context, attempt *model.PendingAttempt) {
	if err := u.pending.Save(ctx, attempt, u.policy.PendingTTL); err != nil {
		u.log.Warn().Err(err).Str("reference", attempt.Reference).Msg("could not park pending attempt")
	}
}

func (u *paymentUC) dropPending(ctx context.Context, reference string) {
	if err := u.pending.Delete(ctx, reference); err != nil && !errors.Is(err, domain.ErrNotFound) {
		u.log.Warn().Err(err).Str("reference", reference).Msg("could not drop pending attempt")
	}
}

// notifyReceipt is fire-and-forget: a lost receipt never fails a payment.
func (u *paymentUC) notifyReceipt(ctx context.Context, p *model.Payment) {
	if u.notifier == nil {
		return
	}
	user, err := u.users.FindByID(ctx, nil, p.UserID)
	if err != nil {
		u.log.Warn().Err(err).Str("user_id", p.UserID).Msg("receipt skipped: user lookup failed")
		return
	}
	if err := u.notifier.SendReceipt(ctx, user, p); err != nil {
		u.log.Warn().Err(err).Str("payment_id", p.ID).Msg("receipt delivery failed")
	}
}

func attemptFromRequest(req *model.PaymentRequest, reference string, now time.Time) *model.PendingAttempt {
	return &model.PendingAttempt{
		Reference: reference,
		UserID:    req.UserID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Plan:      req.Plan,
		Role:      req.Role,
		Metadata:  req.Metadata,
		CreatedAt: now,
	}
}

func channelsFor(method model.PaymentMethod) []adapter.Channel {
	if method == model.PaymentMethodMobile {
		return []adapter.Channel{adapter.ChannelMobileMoney}
	}
	return []adapter.Channel{adapter.ChannelCard}
}

// customerFor derives widget name fields from request metadata, splitting a
// full userName when explicit parts are absent.
func customerFor(meta map[string]string) adapter.Customer {
	first := strings.TrimSpace(meta["firstName"])
	last := strings.TrimSpace(meta["lastName"])
	if first == "" {
		if full := strings.Fields(strings.TrimSpace(meta["userName"])); len(full) > 0 {
			first = full[0]
			if len(full) > 1 {
				last = strings.Join(full[1:], " ")
			}
		}
	}
	if first == "" {
		first = "User"
	}
	if last == "" {
		last = "Marketplace"
	}
	return adapter.Customer{FirstName: first, LastName: last, Phone: strings.TrimSpace(meta["phone"])}
}

func checkoutStatus(o model.CheckoutOutcome, err error) string {
	if err != nil {
		return "error"
	}
	return string(o.Status)
}

func verifyOutcome(vo model.VerificationOutcome, err error) string {
	if err != nil {
		return string(model.VerifyError)
	}
	return string(vo.Status)
}

func jsonOrNull(raw []byte) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
