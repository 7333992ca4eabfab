package service

import (
	"context"
	"fmt"

	"isletmeapp/internal/dto"
	"isletmeapp/internal/repository"
	"isletmeapp/internal/worker"

	"github.com/rs/zerolog/log"
)

type FeeService interface {
	Get(ctx context.Context) (*dto.FeeScheduleResponse, error)
	Update(ctx context.Context, actor string, req dto.UpdateFeeScheduleRequest) (*dto.FeeScheduleResponse, error)
}

type feeService struct {
	fees       repository.FeeScheduleRepository
	dispatcher *worker.Dispatcher
}

func NewFeeService(fees repository.FeeScheduleRepository, dispatcher *worker.Dispatcher) FeeService {
	return &feeService{fees: fees, dispatcher: dispatcher}
}

func (s *feeService) Get(ctx context.Context) (*dto.FeeScheduleResponse, error) {
	schedule, err := s.fees.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.FeeScheduleResponse{
		StandardFee: schedule.StandardFee,
		StudentFee:  schedule.StudentFee,
	}, nil
}

// Update replaces the schedule. Practice records already committed keep their
// amounts; the new fees apply only to commits after this one.
func (s *feeService) Update(ctx context.Context, actor string, req dto.UpdateFeeScheduleRequest) (*dto.FeeScheduleResponse, error) {
	if req.StandardFee.IsNegative() || req.StudentFee.IsNegative() {
		return nil, fmt.Errorf("%w: ücretler negatif olamaz", ErrValidation)
	}
	if err := s.fees.Update(ctx, req.StandardFee, req.StudentFee); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		payload := worker.ActivityPayload{
			Actor:  actor,
			Action: "fee_schedule_updated",
			Details: map[string]string{
				"standard": req.StandardFee.StringFixed(2),
				"student":  req.StudentFee.StringFixed(2),
			},
		}
		if err := s.dispatcher.EnqueueActivity(ctx, payload); err != nil {
			log.Error().Err(err).Msg("failed to enqueue activity log")
		}
	}

	return &dto.FeeScheduleResponse{
		StandardFee: req.StandardFee,
		StudentFee:  req.StudentFee,
	}, nil
}
