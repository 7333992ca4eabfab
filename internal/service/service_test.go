package service

// service_test.go
// Shared in-memory fixture for the service tests: a single store backing stub
// implementations of every repository, plus a transaction manager with real
// snapshot/rollback semantics. The tx manager holds the store mutex for the
// whole transaction, which models the row-lock serialization the Postgres
// layer gets from FOR UPDATE.

import (
	"context"
	"errors"
	"sync"
	"time"

	"isletmeapp/internal/event"
	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type memStore struct {
	mu        sync.Mutex
	pools     map[string]decimal.Decimal
	sales     []model.Sale
	practice  []model.PracticePayment
	payments  []model.CustomerPayment
	customers map[string]bool
	transfers []model.CashTransfer
	fee       model.FeeSchedule
}

func newMemStore() *memStore {
	pools := make(map[string]decimal.Decimal, len(model.PoolIDs))
	for _, id := range model.PoolIDs {
		pools[id] = decimal.Zero
	}
	return &memStore{
		pools:     pools,
		customers: make(map[string]bool),
		fee:       model.FeeSchedule{ID: model.FeeScheduleID},
	}
}

func (st *memStore) snapshot() *memStore {
	cp := &memStore{
		pools:     make(map[string]decimal.Decimal, len(st.pools)),
		sales:     append([]model.Sale(nil), st.sales...),
		practice:  append([]model.PracticePayment(nil), st.practice...),
		payments:  append([]model.CustomerPayment(nil), st.payments...),
		customers: make(map[string]bool, len(st.customers)),
		transfers: append([]model.CashTransfer(nil), st.transfers...),
		fee:       st.fee,
	}
	for k, v := range st.pools {
		cp.pools[k] = v
	}
	for k := range st.customers {
		cp.customers[k] = true
	}
	return cp
}

func (st *memStore) restore(snap *memStore) {
	st.pools = snap.pools
	st.sales = snap.sales
	st.practice = snap.practice
	st.payments = snap.payments
	st.customers = snap.customers
	st.transfers = snap.transfers
	st.fee = snap.fee
}

// ── Transaction manager ──────────────────────────────────────────────────────

type memTxManager struct{ store *memStore }

func (m *memTxManager) RunInTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	snap := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

var _ repository.TxManager = (*memTxManager)(nil)

// ── Repository stubs ─────────────────────────────────────────────────────────
// Tx methods assume the tx manager already holds the store lock; plain methods
// take it themselves.

type stubPoolRepo struct{ store *memStore }

func (r *stubPoolRepo) GetForUpdateTx(_ *gorm.DB, id string) (*model.CashPool, error) {
	bal, ok := r.store.pools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.CashPool{ID: id, Balance: bal}, nil
}

func (r *stubPoolRepo) SetBalanceTx(_ *gorm.DB, id string, balance decimal.Decimal) error {
	r.store.pools[id] = balance
	return nil
}

func (r *stubPoolRepo) Get(_ context.Context, id string) (*model.CashPool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	bal, ok := r.store.pools[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.CashPool{ID: id, Balance: bal}, nil
}

func (r *stubPoolRepo) List(_ context.Context) ([]model.CashPool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]model.CashPool, 0, len(r.store.pools))
	for _, id := range model.PoolIDs {
		out = append(out, model.CashPool{ID: id, Balance: r.store.pools[id]})
	}
	return out, nil
}

func (r *stubPoolRepo) Seed(_ context.Context) error { return nil }

func (r *stubPoolRepo) CreateTransferTx(_ *gorm.DB, t *model.CashTransfer) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.CreatedAt = time.Now()
	r.store.transfers = append(r.store.transfers, *t)
	return nil
}

func (r *stubPoolRepo) ListTransfers(_ context.Context, limit int) ([]model.CashTransfer, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := append([]model.CashTransfer(nil), r.store.transfers...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

var _ repository.CashPoolRepository = (*stubPoolRepo)(nil)

type stubSaleRepo struct{ store *memStore }

func (r *stubSaleRepo) CreateTx(_ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	r.store.sales = append(r.store.sales, *s)
	return nil
}

func (r *stubSaleRepo) ListRecent(_ context.Context, limit int) ([]model.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := append([]model.Sale(nil), r.store.sales...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *stubSaleRepo) ListAll(_ context.Context) ([]model.Sale, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]model.Sale(nil), r.store.sales...), nil
}

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

type stubPracticeRepo struct{ store *memStore }

func (r *stubPracticeRepo) CreateTx(_ *gorm.DB, p *model.PracticePayment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.store.practice = append(r.store.practice, *p)
	return nil
}

func (r *stubPracticeRepo) ListByDay(_ context.Context, day time.Time) ([]model.PracticePayment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)
	var out []model.PracticePayment
	for _, p := range r.store.practice {
		if !p.CreatedAt.Before(start) && p.CreatedAt.Before(end) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPracticeRepo) ListAll(_ context.Context) ([]model.PracticePayment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]model.PracticePayment(nil), r.store.practice...), nil
}

var _ repository.PracticePaymentRepository = (*stubPracticeRepo)(nil)

type stubPaymentRepo struct {
	store *memStore
	// failCreate forces the next CreateTx to error, for rollback tests.
	failCreate bool
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, p *model.CustomerPayment) error {
	if r.failCreate {
		return errors.New("store unavailable")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.store.payments = append(r.store.payments, *p)
	return nil
}

func (r *stubPaymentRepo) FindByID(_ context.Context, id uuid.UUID) (*model.CustomerPayment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.findLocked(id)
}

func (r *stubPaymentRepo) FindByIDForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.CustomerPayment, error) {
	return r.findLocked(id)
}

func (r *stubPaymentRepo) findLocked(id uuid.UUID) (*model.CustomerPayment, error) {
	for i := range r.store.payments {
		if r.store.payments[i].ID == id {
			p := r.store.payments[i]
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) SetConfirmedTx(_ *gorm.DB, id uuid.UUID) error {
	for i := range r.store.payments {
		if r.store.payments[i].ID == id {
			r.store.payments[i].IsConfirmed = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubPaymentRepo) ListRecent(_ context.Context, limit int) ([]model.CustomerPayment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := append([]model.CustomerPayment(nil), r.store.payments...)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *stubPaymentRepo) ListPendingBank(_ context.Context) ([]model.CustomerPayment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []model.CustomerPayment
	for _, p := range r.store.payments {
		if p.PaymentType == model.PaymentBank && !p.IsConfirmed {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPaymentRepo) ListAll(_ context.Context) ([]model.CustomerPayment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return append([]model.CustomerPayment(nil), r.store.payments...), nil
}

var _ repository.CustomerPaymentRepository = (*stubPaymentRepo)(nil)

type stubCustomerRepo struct{ store *memStore }

func (r *stubCustomerRepo) EnsureTx(_ *gorm.DB, name string) error {
	r.store.customers[name] = true
	return nil
}

func (r *stubCustomerRepo) ListNames(_ context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]string, 0, len(r.store.customers))
	for name := range r.store.customers {
		out = append(out, name)
	}
	return out, nil
}

var _ repository.CustomerRepository = (*stubCustomerRepo)(nil)

type stubFeeRepo struct{ store *memStore }

func (r *stubFeeRepo) Get(_ context.Context) (*model.FeeSchedule, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	f := r.store.fee
	return &f, nil
}

func (r *stubFeeRepo) GetTx(_ *gorm.DB) (*model.FeeSchedule, error) {
	f := r.store.fee
	return &f, nil
}

func (r *stubFeeRepo) Update(_ context.Context, standard, student decimal.Decimal) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.fee.StandardFee = standard
	r.store.fee.StudentFee = student
	return nil
}

var _ repository.FeeScheduleRepository = (*stubFeeRepo)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	store    *memStore
	txm      *memTxManager
	pools    *stubPoolRepo
	sales    *stubSaleRepo
	practice *stubPracticeRepo
	payments *stubPaymentRepo
	cust     *stubCustomerRepo
	fees     *stubFeeRepo

	saleSvc     SaleService
	practiceSvc PracticeService
	paymentSvc  PaymentService
	treasurySvc TreasuryService
}

func newFixture() *fixture {
	st := newMemStore()
	f := &fixture{
		store:    st,
		txm:      &memTxManager{store: st},
		pools:    &stubPoolRepo{store: st},
		sales:    &stubSaleRepo{store: st},
		practice: &stubPracticeRepo{store: st},
		payments: &stubPaymentRepo{store: st},
		cust:     &stubCustomerRepo{store: st},
		fees:     &stubFeeRepo{store: st},
	}
	bus := event.NewBus()
	f.saleSvc = NewSaleService(f.txm, f.sales, f.payments, f.cust, f.pools, bus, nil)
	f.practiceSvc = NewPracticeService(f.txm, f.practice, f.payments, f.cust, f.pools, f.fees, bus, nil)
	f.paymentSvc = NewPaymentService(f.txm, f.payments, f.cust, f.pools, bus, nil)
	f.treasurySvc = NewTreasuryService(f.txm, f.pools, bus, nil)
	return f
}

func (f *fixture) poolBalance(id string) decimal.Decimal {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	return f.store.pools[id]
}

func (f *fixture) setPool(id string, v decimal.Decimal) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.pools[id] = v
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
