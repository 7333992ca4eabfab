package service

import (
	"context"
	"sort"
	"sync"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/event"
	"isletmeapp/internal/metrics"
	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// centThreshold is the smallest balance treated as an actual debt. Anything
// below one kuruş is rounding noise.
var centThreshold = decimal.New(1, -2)

// ComputeDebts derives the per-customer balance from the three full streams:
//
//	debt = Σ sale prices + Σ practice fees − Σ payment amounts
//
// Every payment row counts, confirmed or not: a customer who has sent a bank
// transfer that is still awaiting confirmation is already credited in this
// view. Adjustment rows participate like any other payment, which is how a
// debt reset lands the balance on zero without touching history.
//
// The result is sorted by debt descending, name ascending on ties, and is a
// pure function of its inputs: recomputing on unchanged streams yields the
// identical slice.
func ComputeDebts(
	customerNames []string,
	sales []model.Sale,
	practice []model.PracticePayment,
	payments []model.CustomerPayment,
) []dto.DebtEntryResponse {
	debts := make(map[string]decimal.Decimal)
	for _, name := range customerNames {
		debts[name] = decimal.Zero
	}
	for _, s := range sales {
		debts[s.CustomerName] = debts[s.CustomerName].Add(s.SalePrice)
	}
	for _, p := range practice {
		debts[p.AttendeeName] = debts[p.AttendeeName].Add(p.Amount)
	}
	for _, p := range payments {
		debts[p.CustomerName] = debts[p.CustomerName].Sub(p.Amount)
	}

	out := make([]dto.DebtEntryResponse, 0, len(debts))
	for name, total := range debts {
		out = append(out, dto.DebtEntryResponse{CustomerName: name, TotalDebt: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalDebt.Equal(out[j].TotalDebt) {
			return out[i].TotalDebt.GreaterThan(out[j].TotalDebt)
		}
		return out[i].CustomerName < out[j].CustomerName
	})
	return out
}

type DebtService interface {
	// Debts returns the current materialized snapshot.
	Debts(ctx context.Context) ([]dto.DebtEntryResponse, error)
	// OpenDebts returns only customers owing at least one kuruş.
	OpenDebts(ctx context.Context) ([]dto.DebtEntryResponse, error)
	// Start primes the snapshot and launches the recompute loop; it returns
	// after the initial computation so readers never see an empty view.
	Start(ctx context.Context) error
}

// debtService keeps the debt view materialized. Recomputation is triggered by
// bus events from the three writing services; bursts collapse into a single
// recompute through the capacity-1 notify channel.
type debtService struct {
	sales     repository.SaleRepository
	practice  repository.PracticePaymentRepository
	payments  repository.CustomerPaymentRepository
	customers repository.CustomerRepository

	mu       sync.RWMutex
	snapshot []dto.DebtEntryResponse

	notify chan struct{}
}

func NewDebtService(
	bus *event.Bus,
	sales repository.SaleRepository,
	practice repository.PracticePaymentRepository,
	payments repository.CustomerPaymentRepository,
	customers repository.CustomerRepository,
) DebtService {
	s := &debtService{
		sales:     sales,
		practice:  practice,
		payments:  payments,
		customers: customers,
		notify:    make(chan struct{}, 1),
	}
	bus.Subscribe(func(e event.Event) {
		switch e.Topic {
		case event.TopicSales, event.TopicPractice, event.TopicPayments:
			select {
			case s.notify <- struct{}{}:
			default: // a recompute is already queued
			}
		}
	})
	return s
}

func (s *debtService) Start(ctx context.Context) error {
	if err := s.recompute(ctx); err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.notify:
				if err := s.recompute(ctx); err != nil {
					log.Error().Err(err).Msg("debt view recompute failed")
				}
			}
		}
	}()
	return nil
}

func (s *debtService) Debts(ctx context.Context) ([]dto.DebtEntryResponse, error) {
	s.mu.RLock()
	snap := s.snapshot
	s.mu.RUnlock()
	if snap == nil {
		// Start was not called (or failed); compute directly.
		return s.compute(ctx)
	}
	out := make([]dto.DebtEntryResponse, len(snap))
	copy(out, snap)
	return out, nil
}

func (s *debtService) OpenDebts(ctx context.Context) ([]dto.DebtEntryResponse, error) {
	all, err := s.Debts(ctx)
	if err != nil {
		return nil, err
	}
	open := make([]dto.DebtEntryResponse, 0, len(all))
	for _, d := range all {
		if d.TotalDebt.GreaterThanOrEqual(centThreshold) {
			open = append(open, d)
		}
	}
	return open, nil
}

func (s *debtService) recompute(ctx context.Context) error {
	entries, err := s.compute(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = entries
	s.mu.Unlock()
	metrics.DebtRecomputes.Inc()
	return nil
}

func (s *debtService) compute(ctx context.Context) ([]dto.DebtEntryResponse, error) {
	names, err := s.customers.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	sales, err := s.sales.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	practice, err := s.practice.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeDebts(names, sales, practice, payments), nil
}
