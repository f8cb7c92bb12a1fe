package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"property-marketplace/internal/domain"
	"property-marketplace/internal/domain/model"
	"property-marketplace/internal/domain/ports/adapter"
	"property-marketplace/internal/domain/ports/repository"
)

// newTestLogger creates a silent zerolog.Logger for use in tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

// ===== Repositories =====

// memPaymentRepo is a small in-memory implementation used by unit tests.
type memPaymentRepo struct {
	mu        sync.RWMutex
	store     map[string]*model.Payment // by ID
	byRef     map[string]string         // provider ref -> ID
	createErr error                     // simulate recording failures
}

func newMemPaymentRepo() *memPaymentRepo {
	return &memPaymentRepo{store: make(map[string]*model.Payment), byRef: make(map[string]string)}
}

func (m *memPaymentRepo) Create(ctx context.Context, tx repository.Tx, p *model.Payment) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.byRef[p.ProviderRef]; dup {
		return "", domain.ErrAlreadyExists
	}
	cp := *p
	m.store[p.ID] = &cp
	m.byRef[p.ProviderRef] = p.ID
	return p.ID, nil
}

func (m *memPaymentRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPaymentRepo) FindByProviderRef(ctx context.Context, tx repository.Tx, providerRef string) (*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byRef[providerRef]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *m.store[id]
	return &cp, nil
}

func (m *memPaymentRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Payment
	for _, p := range m.store {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memPaymentRepo) SumCompletedSince(ctx context.Context, tx repository.Tx, since time.Time) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sum float64
	for _, p := range m.store {
		if p.Status == model.PaymentStatusCompleted && !p.CreatedAt.Before(since) {
			sum += p.Amount
		}
	}
	return sum, nil
}

// memSubRepo keeps one subscription row per user, like the real table.
type memSubRepo struct {
	mu   sync.RWMutex
	subs map[string]*model.Subscription // by UserID
}

func newMemSubRepo() *memSubRepo {
	return &memSubRepo{subs: make(map[string]*model.Subscription)}
}

func (m *memSubRepo) Upsert(ctx context.Context, tx repository.Tx, sub *model.Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *sub
	if prev, ok := m.subs[sub.UserID]; ok {
		cp.ID = prev.ID
		cp.CreatedAt = prev.CreatedAt
	}
	m.subs[sub.UserID] = &cp
	return nil
}

func (m *memSubRepo) FindByUser(ctx context.Context, tx repository.Tx, userID string) (*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.subs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memSubRepo) List(ctx context.Context, tx repository.Tx, limit int) ([]*model.Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Subscription
	for _, s := range m.subs {
		cp := *s
		out = append(out, &cp)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memSubRepo) CountActiveByPlan(ctx context.Context, tx repository.Tx) (map[string]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int)
	now := time.Now()
	for _, s := range m.subs {
		if s.IsActive(now) {
			out[string(s.Plan)]++
		}
	}
	return out, nil
}

// memUserRepo stores users by ID.
type memUserRepo struct {
	mu    sync.RWMutex
	store map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{store: make(map[string]*model.User)}
}

func (m *memUserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.store[u.ID] = &cp
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.store {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memUserRepo) List(ctx context.Context, tx repository.Tx, offset, limit int) ([]*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.User
	for _, u := range m.store {
		cp := *u
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memUserRepo) UpdateSubscriptionStatus(ctx context.Context, tx repository.Tx, id string, status model.SubscriptionStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.SubscriptionStatus = status
	return nil
}

func (m *memUserRepo) CountUsers(ctx context.Context, tx repository.Tx) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.store), nil
}

// memPropertyRepo stores listings by ID.
type memPropertyRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Property
}

func newMemPropertyRepo() *memPropertyRepo {
	return &memPropertyRepo{store: make(map[string]*model.Property)}
}

func (m *memPropertyRepo) Save(ctx context.Context, tx repository.Tx, p *model.Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.store[p.ID] = &cp
	return nil
}

func (m *memPropertyRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPropertyRepo) List(ctx context.Context, tx repository.Tx, f repository.PropertyFilter) ([]*model.Property, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Property
	for _, p := range m.store {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.ListingType != "" && p.ListingType != f.ListingType {
			continue
		}
		if f.Location != "" && p.Location != f.Location {
			continue
		}
		if f.OwnerUserID != "" && p.OwnerUserID != f.OwnerUserID {
			continue
		}
		cp := *p
		out = append(out, &cp)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func (m *memPropertyRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// memPendingRepo parks attempts in memory; TTL is ignored.
type memPendingRepo struct {
	mu    sync.RWMutex
	store map[string]*model.PendingAttempt
}

func newMemPendingRepo() *memPendingRepo {
	return &memPendingRepo{store: make(map[string]*model.PendingAttempt)}
}

func (m *memPendingRepo) Save(ctx context.Context, a *model.PendingAttempt, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.Reference] = &cp
	return nil
}

func (m *memPendingRepo) ListOlderThan(ctx context.Context, cutoff time.Time, limit int) ([]*model.PendingAttempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.PendingAttempt
	for _, a := range m.store {
		if a.CreatedAt.Before(cutoff) {
			cp := *a
			out = append(out, &cp)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memPendingRepo) Delete(ctx context.Context, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[reference]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, reference)
	return nil
}

func (m *memPendingRepo) has(reference string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.store[reference]
	return ok
}

// ===== Adapters =====

// fakeGateway lets each test script the checkout outcome and records calls.
type fakeGateway struct {
	mu       sync.Mutex
	calls    int
	lastOpts adapter.CheckoutOptions
	outcome  model.CheckoutOutcome
	err      error
	openFunc func(ctx context.Context, opts adapter.CheckoutOptions) (model.CheckoutOutcome, error)
}

func (g *fakeGateway) Name() string { return "fake" }

func (g *fakeGateway) OpenCheckout(ctx context.Context, opts adapter.CheckoutOptions) (model.CheckoutOutcome, error) {
	g.mu.Lock()
	g.calls++
	g.lastOpts = opts
	g.mu.Unlock()
	if g.openFunc != nil {
		return g.openFunc(ctx, opts)
	}
	if g.outcome.Status == "" && g.err == nil {
		return model.CheckoutOutcome{Status: model.CheckoutSuccess, Reference: opts.Reference}, nil
	}
	return g.outcome, g.err
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// fakeVerifier returns a scripted verification outcome per reference.
type fakeVerifier struct {
	mu       sync.Mutex
	outcomes map[string]model.VerificationOutcome
	err      error
	calls    int
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{outcomes: make(map[string]model.VerificationOutcome)}
}

func (v *fakeVerifier) set(ref string, vo model.VerificationOutcome) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.outcomes[ref] = vo
}

func (v *fakeVerifier) Verify(ctx context.Context, reference string) (model.VerificationOutcome, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calls++
	if v.err != nil {
		return model.VerificationOutcome{Status: model.VerifyError}, v.err
	}
	if vo, ok := v.outcomes[reference]; ok {
		return vo, nil
	}
	return model.VerificationOutcome{Status: model.VerifySuccess, Raw: []byte(`{}`)}, nil
}

// fakeLocker grants every lock; a test can flip locked to simulate contention.
type fakeLocker struct {
	mu     sync.Mutex
	locked bool
}

func (l *fakeLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locked {
		return "", domain.ErrUserLocked
	}
	return "tok", nil
}

func (l *fakeLocker) Unlock(ctx context.Context, key, token string) error { return nil }

// fakeNotifier records receipts.
type fakeNotifier struct {
	mu       sync.Mutex
	receipts []*model.Payment
	err      error
}

func (n *fakeNotifier) SendReceipt(ctx context.Context, user *model.User, payment *model.Payment) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.receipts = append(n.receipts, payment)
	return nil
}

// fakeTxManager runs the function directly; unit tests have no database.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, nil)
}
