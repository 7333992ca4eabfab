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

type PracticeService interface {
	RecordPracticePayment(ctx context.Context, actor string, req dto.RecordPracticePaymentRequest) (*dto.PracticePaymentResponse, error)
	ListByDay(ctx context.Context, day time.Time) ([]dto.PracticePaymentResponse, error)
}

type practiceService struct {
	tx         repository.TxManager
	practice   repository.PracticePaymentRepository
	payments   repository.CustomerPaymentRepository
	customers  repository.CustomerRepository
	pools      repository.CashPoolRepository
	fees       repository.FeeScheduleRepository
	bus        *event.Bus
	dispatcher *worker.Dispatcher
}

func NewPracticeService(
	tx repository.TxManager,
	practice repository.PracticePaymentRepository,
	payments repository.CustomerPaymentRepository,
	customers repository.CustomerRepository,
	pools repository.CashPoolRepository,
	fees repository.FeeScheduleRepository,
	bus *event.Bus,
	dispatcher *worker.Dispatcher,
) PracticeService {
	return &practiceService{
		tx:         tx,
		practice:   practice,
		payments:   payments,
		customers:  customers,
		pools:      pools,
		fees:       fees,
		bus:        bus,
		dispatcher: dispatcher,
	}
}

// RecordPracticePayment prices the session from the fee schedule as it stands
// at commit time. The fee read happens inside the transaction, so a schedule
// update racing with this call affects either all of the commit or none of it.
func (s *practiceService) RecordPracticePayment(ctx context.Context, actor string, req dto.RecordPracticePaymentRequest) (*dto.PracticePaymentResponse, error) {
	attendeeName := strings.TrimSpace(req.AttendeeName)
	if attendeeName == "" {
		return nil, fmt.Errorf("%w: katılımcı adı boş olamaz", ErrValidation)
	}
	if req.FeeType != model.FeeStandard && req.FeeType != model.FeeStudent {
		return nil, fmt.Errorf("%w: bilinmeyen ücret türü %q", ErrValidation, req.FeeType)
	}
	if req.CashDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: peşinat negatif olamaz", ErrValidation)
	}

	hasDeposit := req.CashDeposit.IsPositive()
	var record model.PracticePayment

	txErr := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		schedule, err := s.fees.GetTx(tx)
		if err != nil {
			return fmt.Errorf("ücret tarifesi okunamadı: %w", err)
		}
		fee, ok := schedule.FeeFor(req.FeeType)
		if !ok {
			return fmt.Errorf("%w: bilinmeyen ücret türü %q", ErrValidation, req.FeeType)
		}
		if !fee.IsPositive() {
			return fmt.Errorf("%w: ücret tarifesi tanımlı değil", ErrValidation)
		}

		if err := s.customers.EnsureTx(tx, attendeeName); err != nil {
			return err
		}

		record = model.PracticePayment{
			AttendeeName: attendeeName,
			Amount:       fee,
			FeeType:      req.FeeType,
			RecordedBy:   actor,
		}
		if err := s.practice.CreateTx(tx, &record); err != nil {
			return err
		}
		if !hasDeposit {
			return nil
		}

		paidFor := model.PaidForPractice
		payment := model.CustomerPayment{
			CustomerName: attendeeName,
			Amount:       req.CashDeposit,
			PaymentType:  model.PaymentCash,
			IsConfirmed:  true,
			PaidFor:      &paidFor,
			RecordedBy:   actor,
		}
		if err := s.payments.CreateTx(tx, &payment); err != nil {
			return err
		}

		pool, err := s.pools.GetForUpdateTx(tx, model.PoolPractice)
		if err != nil {
			return err
		}
		return s.pools.SetBalanceTx(tx, model.PoolPractice, pool.Balance.Add(req.CashDeposit))
	})
	if txErr != nil {
		metrics.LedgerCommitFailures.WithLabelValues("record_practice").Inc()
		return nil, txErr
	}

	metrics.LedgerCommits.WithLabelValues("record_practice").Inc()
	s.bus.Publish(event.TopicPractice, "practice_recorded")
	if hasDeposit {
		s.bus.Publish(event.TopicPayments, "payment_recorded")
		s.bus.Publish(event.TopicPools, "pool_changed")
	}
	s.logActivity(ctx, actor, "practice_recorded", map[string]string{
		"attendee": attendeeName,
		"fee_type": req.FeeType,
		"amount":   record.Amount.StringFixed(2),
	})

	return practiceToResponse(&record), nil
}

func (s *practiceService) ListByDay(ctx context.Context, day time.Time) ([]dto.PracticePaymentResponse, error) {
	records, err := s.practice.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PracticePaymentResponse, 0, len(records))
	for i := range records {
		out = append(out, *practiceToResponse(&records[i]))
	}
	return out, nil
}

func (s *practiceService) logActivity(ctx context.Context, actor, action string, details map[string]string) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueActivity(ctx, worker.ActivityPayload{Actor: actor, Action: action, Details: details}); err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to enqueue activity log")
	}
}

func practiceToResponse(p *model.PracticePayment) *dto.PracticePaymentResponse {
	return &dto.PracticePaymentResponse{
		ID:           p.ID.String(),
		AttendeeName: p.AttendeeName,
		Amount:       p.Amount,
		FeeType:      p.FeeType,
		RecordedBy:   p.RecordedBy,
		CreatedAt:    isoTime(p.CreatedAt),
	}
}
