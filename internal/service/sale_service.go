package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/event"
	"isletmeapp/internal/metrics"
	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"
	"isletmeapp/internal/worker"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type SaleService interface {
	RecordSale(ctx context.Context, actor string, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	RecentSales(ctx context.Context) ([]dto.SaleResponse, error)
}

type saleService struct {
	tx         repository.TxManager
	sales      repository.SaleRepository
	payments   repository.CustomerPaymentRepository
	customers  repository.CustomerRepository
	pools      repository.CashPoolRepository
	bus        *event.Bus
	dispatcher *worker.Dispatcher
}

func NewSaleService(
	tx repository.TxManager,
	sales repository.SaleRepository,
	payments repository.CustomerPaymentRepository,
	customers repository.CustomerRepository,
	pools repository.CashPoolRepository,
	bus *event.Bus,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		tx:         tx,
		sales:      sales,
		payments:   payments,
		customers:  customers,
		pools:      pools,
		bus:        bus,
		dispatcher: dispatcher,
	}
}

// isoTime renders response timestamps the way every endpoint does.
func isoTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// ── RecordSale ───────────────────────────────────────────────────────────────
// One atomic commit:
//   1. ensure the canonical customer row (first writer wins)
//   2. append the sale row
//   3. if cash was handed over: append a confirmed cash payment and move the
//      sales pool up by the same amount, under a row lock
// Nothing is published or logged until the commit succeeds.

func (s *saleService) RecordSale(ctx context.Context, actor string, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	customerName := strings.TrimSpace(req.CustomerName)
	productName := strings.TrimSpace(req.ProductName)
	if customerName == "" || productName == "" {
		return nil, fmt.Errorf("%w: müşteri ve ürün adı boş olamaz", ErrValidation)
	}
	if !req.SalePrice.IsPositive() {
		return nil, fmt.Errorf("%w: satış tutarı sıfırdan büyük olmalı", ErrValidation)
	}
	if req.CashDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: peşinat negatif olamaz", ErrValidation)
	}

	sale := model.Sale{
		CustomerName: customerName,
		ProductName:  productName,
		SalePrice:    req.SalePrice,
		RecordedBy:   actor,
	}

	hasDeposit := req.CashDeposit.IsPositive()

	txErr := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		if err := s.customers.EnsureTx(tx, customerName); err != nil {
			return err
		}
		if err := s.sales.CreateTx(tx, &sale); err != nil {
			return err
		}
		if !hasDeposit {
			return nil
		}

		paidFor := model.PaidForSales
		payment := model.CustomerPayment{
			CustomerName: customerName,
			Amount:       req.CashDeposit,
			PaymentType:  model.PaymentCash,
			IsConfirmed:  true,
			PaidFor:      &paidFor,
			RecordedBy:   actor,
		}
		if err := s.payments.CreateTx(tx, &payment); err != nil {
			return err
		}

		pool, err := s.pools.GetForUpdateTx(tx, model.PoolSales)
		if err != nil {
			return err
		}
		return s.pools.SetBalanceTx(tx, model.PoolSales, pool.Balance.Add(req.CashDeposit))
	})
	if txErr != nil {
		metrics.LedgerCommitFailures.WithLabelValues("record_sale").Inc()
		return nil, txErr
	}

	metrics.LedgerCommits.WithLabelValues("record_sale").Inc()
	s.bus.Publish(event.TopicSales, "sale_recorded")
	if hasDeposit {
		s.bus.Publish(event.TopicPayments, "payment_recorded")
		s.bus.Publish(event.TopicPools, "pool_changed")
	}
	s.logActivity(ctx, actor, "sale_recorded", map[string]string{
		"customer": customerName,
		"product":  productName,
		"price":    req.SalePrice.StringFixed(2),
	})

	return saleToResponse(&sale), nil
}

func (s *saleService) RecentSales(ctx context.Context) ([]dto.SaleResponse, error) {
	sales, err := s.sales.ListRecent(ctx, 50)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		out = append(out, *saleToResponse(&sales[i]))
	}
	return out, nil
}

func (s *saleService) logActivity(ctx context.Context, actor, action string, details map[string]string) {
	if s.dispatcher == nil {
		return
	}
	payload := worker.ActivityPayload{Actor: actor, Action: action, Details: details}
	if err := s.dispatcher.EnqueueActivity(ctx, payload); err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to enqueue activity log")
	}
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:           sale.ID.String(),
		CustomerName: sale.CustomerName,
		ProductName:  sale.ProductName,
		SalePrice:    sale.SalePrice,
		RecordedBy:   sale.RecordedBy,
		CreatedAt:    isoTime(sale.CreatedAt),
	}
}
