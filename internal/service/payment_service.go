package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/event"
	"isletmeapp/internal/metrics"
	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"
	"isletmeapp/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PaymentService interface {
	RecordCustomerPayment(ctx context.Context, actor string, req dto.RecordCustomerPaymentRequest) (*dto.CustomerPaymentResponse, error)
	ConfirmPayment(ctx context.Context, actor string, id uuid.UUID) (*dto.CustomerPaymentResponse, error)
	ResetDebt(ctx context.Context, actor, customerName string, req dto.ResetDebtRequest) (*dto.CustomerPaymentResponse, error)
	RecentPayments(ctx context.Context) ([]dto.CustomerPaymentResponse, error)
	PendingBankPayments(ctx context.Context) ([]dto.CustomerPaymentResponse, error)
}

type paymentService struct {
	tx         repository.TxManager
	payments   repository.CustomerPaymentRepository
	customers  repository.CustomerRepository
	pools      repository.CashPoolRepository
	bus        *event.Bus
	dispatcher *worker.Dispatcher
}

func NewPaymentService(
	tx repository.TxManager,
	payments repository.CustomerPaymentRepository,
	customers repository.CustomerRepository,
	pools repository.CashPoolRepository,
	bus *event.Bus,
	dispatcher *worker.Dispatcher,
) PaymentService {
	return &paymentService{
		tx:         tx,
		payments:   payments,
		customers:  customers,
		pools:      pools,
		bus:        bus,
		dispatcher: dispatcher,
	}
}

// ── RecordCustomerPayment ────────────────────────────────────────────────────
// Cash lands in the sales pool immediately and the row is born confirmed.
// Bank rows are born pending and touch no pool; money enters the iban pool
// only through ConfirmPayment.

func (s *paymentService) RecordCustomerPayment(ctx context.Context, actor string, req dto.RecordCustomerPaymentRequest) (*dto.CustomerPaymentResponse, error) {
	customerName := strings.TrimSpace(req.CustomerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: müşteri adı boş olamaz", ErrValidation)
	}
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: tutar sıfır olamaz", ErrValidation)
	}

	var payment model.CustomerPayment
	switch req.PaymentType {
	case model.PaymentCash:
		payment = model.CustomerPayment{
			CustomerName: customerName,
			Amount:       req.Amount,
			PaymentType:  model.PaymentCash,
			IsConfirmed:  true,
			RecordedBy:   actor,
		}
	case model.PaymentBank:
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: havale tutarı sıfırdan büyük olmalı", ErrValidation)
		}
		payment = model.CustomerPayment{
			CustomerName: customerName,
			Amount:       req.Amount,
			PaymentType:  model.PaymentBank,
			IsConfirmed:  false,
			RecordedBy:   actor,
		}
	default:
		return nil, fmt.Errorf("%w: bilinmeyen ödeme türü %q", ErrValidation, req.PaymentType)
	}

	isCash := payment.PaymentType == model.PaymentCash

	txErr := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.customers.EnsureTx(tx, customerName); err != nil {
			return err
		}
		if err := s.payments.CreateTx(tx, &payment); err != nil {
			return err
		}
		if !isCash {
			return nil
		}
		pool, err := s.pools.GetForUpdateTx(tx, model.PoolSales)
		if err != nil {
			return err
		}
		return s.pools.SetBalanceTx(tx, model.PoolSales, pool.Balance.Add(payment.Amount))
	})
	if txErr != nil {
		metrics.LedgerCommitFailures.WithLabelValues("record_payment").Inc()
		return nil, txErr
	}

	metrics.LedgerCommits.WithLabelValues("record_payment").Inc()
	s.bus.Publish(event.TopicPayments, "payment_recorded")
	if isCash {
		s.bus.Publish(event.TopicPools, "pool_changed")
	}
	s.logActivity(ctx, actor, "payment_recorded", map[string]string{
		"customer": customerName,
		"type":     payment.PaymentType,
		"amount":   payment.Amount.StringFixed(2),
	})

	return paymentToResponse(&payment), nil
}

// ── ConfirmPayment ───────────────────────────────────────────────────────────
// The single permitted mutation on a ledger row: bank pending → confirmed,
// atomically paired with the iban pool increment. The row lock makes two
// concurrent confirms serialize; the loser re-reads a confirmed row and gets
// ErrConfirmationConflict, leaving the pool incremented exactly once.

func (s *paymentService) ConfirmPayment(ctx context.Context, actor string, id uuid.UUID) (*dto.CustomerPaymentResponse, error) {
	var confirmed model.CustomerPayment

	txErr := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		payment, err := s.payments.FindByIDForUpdateTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: ödeme %s", ErrNotFound, id)
			}
			return err
		}
		if !payment.Pending() {
			return ErrConfirmationConflict
		}
		if err := s.payments.SetConfirmedTx(tx, id); err != nil {
			return err
		}
		pool, err := s.pools.GetForUpdateTx(tx, model.PoolIBAN)
		if err != nil {
			return err
		}
		if err := s.pools.SetBalanceTx(tx, model.PoolIBAN, pool.Balance.Add(payment.Amount)); err != nil {
			return err
		}
		confirmed = *payment
		confirmed.IsConfirmed = true
		return nil
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrConfirmationConflict) && !errors.Is(txErr, ErrNotFound) {
			metrics.LedgerCommitFailures.WithLabelValues("confirm_payment").Inc()
		}
		return nil, txErr
	}

	metrics.LedgerCommits.WithLabelValues("confirm_payment").Inc()
	s.bus.Publish(event.TopicPayments, "payment_confirmed")
	s.bus.Publish(event.TopicPools, "pool_changed")
	s.logActivity(ctx, actor, "payment_confirmed", map[string]string{
		"payment_id": id.String(),
		"customer":   confirmed.CustomerName,
		"amount":     confirmed.Amount.StringFixed(2),
	})

	return paymentToResponse(&confirmed), nil
}

// ── ResetDebt ────────────────────────────────────────────────────────────────
// Zeroes a customer's balance by appending one adjustment row for the negated
// debt. Prior rows are never touched; the full history stays auditable.

func (s *paymentService) ResetDebt(ctx context.Context, actor, customerName string, req dto.ResetDebtRequest) (*dto.CustomerPaymentResponse, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, fmt.Errorf("%w: müşteri adı boş olamaz", ErrValidation)
	}
	if req.TotalDebt.Abs().LessThan(centThreshold) {
		return nil, fmt.Errorf("%w: sıfırlanacak borç yok", ErrValidation)
	}

	paidFor := model.PaidForAdjustment
	adjustment := model.CustomerPayment{
		CustomerName: customerName,
		Amount:       req.TotalDebt.Neg(),
		PaymentType:  model.PaymentAdjustment,
		IsConfirmed:  true,
		PaidFor:      &paidFor,
		RecordedBy:   actor,
	}

	txErr := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.customers.EnsureTx(tx, customerName); err != nil {
			return err
		}
		return s.payments.CreateTx(tx, &adjustment)
	})
	if txErr != nil {
		metrics.LedgerCommitFailures.WithLabelValues("reset_debt").Inc()
		return nil, txErr
	}

	metrics.LedgerCommits.WithLabelValues("reset_debt").Inc()
	s.bus.Publish(event.TopicPayments, "debt_reset")
	s.logActivity(ctx, actor, "debt_reset", map[string]string{
		"customer": customerName,
		"amount":   adjustment.Amount.StringFixed(2),
	})

	return paymentToResponse(&adjustment), nil
}

func (s *paymentService) RecentPayments(ctx context.Context) ([]dto.CustomerPaymentResponse, error) {
	payments, err := s.payments.ListRecent(ctx, 20)
	if err != nil {
		return nil, err
	}
	return paymentsToResponses(payments), nil
}

func (s *paymentService) PendingBankPayments(ctx context.Context) ([]dto.CustomerPaymentResponse, error) {
	payments, err := s.payments.ListPendingBank(ctx)
	if err != nil {
		return nil, err
	}
	return paymentsToResponses(payments), nil
}

func (s *paymentService) logActivity(ctx context.Context, actor, action string, details map[string]string) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueActivity(ctx, worker.ActivityPayload{Actor: actor, Action: action, Details: details}); err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to enqueue activity log")
	}
}

func paymentsToResponses(payments []model.CustomerPayment) []dto.CustomerPaymentResponse {
	out := make([]dto.CustomerPaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, *paymentToResponse(&payments[i]))
	}
	return out
}

func paymentToResponse(p *model.CustomerPayment) *dto.CustomerPaymentResponse {
	return &dto.CustomerPaymentResponse{
		ID:           p.ID.String(),
		CustomerName: p.CustomerName,
		Amount:       p.Amount,
		PaymentType:  p.PaymentType,
		IsConfirmed:  p.IsConfirmed,
		PaidFor:      p.PaidFor,
		RecordedBy:   p.RecordedBy,
		CreatedAt:    isoTime(p.CreatedAt),
	}
}
