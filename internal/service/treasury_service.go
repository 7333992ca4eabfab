package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/event"
	"isletmeapp/internal/metrics"
	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"
	"isletmeapp/internal/worker"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TreasuryService interface {
	Pools(ctx context.Context) ([]dto.PoolBalanceResponse, error)
	TransferToMain(ctx context.Context, actor string, req dto.TransferToMainRequest) (*dto.TransferResponse, error)
	ResetMainPool(ctx context.Context, actor string) error
	RecentTransfers(ctx context.Context) ([]dto.TransferResponse, error)
}

type treasuryService struct {
	tx         repository.TxManager
	pools      repository.CashPoolRepository
	bus        *event.Bus
	dispatcher *worker.Dispatcher
}

func NewTreasuryService(
	tx repository.TxManager,
	pools repository.CashPoolRepository,
	bus *event.Bus,
	dispatcher *worker.Dispatcher,
) TreasuryService {
	return &treasuryService{tx: tx, pools: pools, bus: bus, dispatcher: dispatcher}
}

// Pools returns the four balances in the fixed main/sales/practice/iban order.
func (s *treasuryService) Pools(ctx context.Context) ([]dto.PoolBalanceResponse, error) {
	pools, err := s.pools.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]decimal.Decimal, len(pools))
	for _, p := range pools {
		byID[p.ID] = p.Balance
	}
	out := make([]dto.PoolBalanceResponse, 0, len(model.PoolIDs))
	for _, id := range model.PoolIDs {
		out = append(out, dto.PoolBalanceResponse{Pool: id, Balance: byID[id]})
	}
	return out, nil
}

// ── TransferToMain ───────────────────────────────────────────────────────────
// Locks the source and main pool rows in sorted ID order so two transfers
// touching the same pair can never deadlock. The balance check runs after the
// lock is held, which is what makes "two transfers of the full balance" admit
// at most one winner.

func (s *treasuryService) TransferToMain(ctx context.Context, actor string, req dto.TransferToMainRequest) (*dto.TransferResponse, error) {
	if !model.ValidPool(req.SourcePool) || req.SourcePool == model.PoolMain {
		return nil, fmt.Errorf("%w: geçersiz kaynak kasa %q", ErrValidation, req.SourcePool)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: aktarım tutarı sıfırdan büyük olmalı", ErrValidation)
	}

	transfer := model.CashTransfer{
		SourcePool: req.SourcePool,
		Amount:     req.Amount,
		RecordedBy: actor,
	}

	txErr := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		ids := []string{req.SourcePool, model.PoolMain}
		sort.Strings(ids)

		locked := make(map[string]*model.CashPool, 2)
		for _, id := range ids {
			pool, err := s.pools.GetForUpdateTx(tx, id)
			if err != nil {
				return err
			}
			locked[id] = pool
		}

		source := locked[req.SourcePool]
		if source.Balance.LessThan(req.Amount) {
			return ErrInsufficientBalance
		}

		main := locked[model.PoolMain]
		if err := s.pools.SetBalanceTx(tx, req.SourcePool, source.Balance.Sub(req.Amount)); err != nil {
			return err
		}
		if err := s.pools.SetBalanceTx(tx, model.PoolMain, main.Balance.Add(req.Amount)); err != nil {
			return err
		}
		return s.pools.CreateTransferTx(tx, &transfer)
	})
	if txErr != nil {
		if !errors.Is(txErr, ErrInsufficientBalance) {
			metrics.LedgerCommitFailures.WithLabelValues("transfer").Inc()
		}
		return nil, txErr
	}

	metrics.LedgerCommits.WithLabelValues("transfer").Inc()
	s.bus.Publish(event.TopicPools, "pool_changed")
	s.logActivity(ctx, actor, "transfer_to_main", map[string]string{
		"source": req.SourcePool,
		"amount": req.Amount.StringFixed(2),
	})

	return transferToResponse(&transfer), nil
}

// ResetMainPool zeroes the main pool. This is the only balance write that is
// not backed by a ledger row; it is always written to the activity log.
func (s *treasuryService) ResetMainPool(ctx context.Context, actor string) error {
	var previous decimal.Decimal

	txErr := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		pool, err := s.pools.GetForUpdateTx(tx, model.PoolMain)
		if err != nil {
			return err
		}
		previous = pool.Balance
		return s.pools.SetBalanceTx(tx, model.PoolMain, decimal.Zero)
	})
	if txErr != nil {
		metrics.LedgerCommitFailures.WithLabelValues("reset_main").Inc()
		return txErr
	}

	metrics.LedgerCommits.WithLabelValues("reset_main").Inc()
	s.bus.Publish(event.TopicPools, "pool_changed")
	s.logActivity(ctx, actor, "main_pool_reset", map[string]string{
		"previous_balance": previous.StringFixed(2),
	})
	return nil
}

func (s *treasuryService) RecentTransfers(ctx context.Context) ([]dto.TransferResponse, error) {
	transfers, err := s.pools.ListTransfers(ctx, 20)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for i := range transfers {
		out = append(out, *transferToResponse(&transfers[i]))
	}
	return out, nil
}

func (s *treasuryService) logActivity(ctx context.Context, actor, action string, details map[string]string) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.EnqueueActivity(ctx, worker.ActivityPayload{Actor: actor, Action: action, Details: details}); err != nil {
		log.Error().Err(err).Str("action", action).Msg("failed to enqueue activity log")
	}
}

func transferToResponse(t *model.CashTransfer) *dto.TransferResponse {
	return &dto.TransferResponse{
		ID:         t.ID.String(),
		SourcePool: t.SourcePool,
		Amount:     t.Amount,
		RecordedBy: t.RecordedBy,
		CreatedAt:  isoTime(t.CreatedAt),
	}
}
