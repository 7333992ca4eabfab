package worker

import (
	"context"
	"encoding/json"

	"isletmeapp/internal/model"
	"isletmeapp/internal/repository"
)

// ActivityWorker persists audit-log entries dequeued from Redis.
type ActivityWorker struct {
	logs repository.ActivityLogRepository
}

func NewActivityWorker(logs repository.ActivityLogRepository) *ActivityWorker {
	return &ActivityWorker{logs: logs}
}

func (w *ActivityWorker) Handle(ctx context.Context, p ActivityPayload) error {
	details := "{}"
	if len(p.Details) > 0 {
		data, err := json.Marshal(p.Details)
		if err != nil {
			return err
		}
		details = string(data)
	}
	entry := &model.ActivityLog{
		Actor:   p.Actor,
		Action:  p.Action,
		Details: details,
	}
	return w.logs.Create(ctx, entry)
}
