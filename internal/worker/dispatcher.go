package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

const (
	QueueActivity = "jobs:activity"
	QueueReport   = "jobs:report"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// ActivityPayload describes one audit-log entry to be persisted off the
// request path. Ledger commits never wait on activity logging.
type ActivityPayload struct {
	Actor   string            `json:"actor"`
	Action  string            `json:"action"`
	Details map[string]string `json:"details,omitempty"`
}

// ReportPayload triggers generation of the daily treasury summary.
type ReportPayload struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueActivity pushes an audit-log job.
func (d *Dispatcher) EnqueueActivity(ctx context.Context, p ActivityPayload) error {
	return d.enqueue(ctx, QueueActivity, "activity", p)
}

// EnqueueDailyReport pushes a treasury-report job.
func (d *Dispatcher) EnqueueDailyReport(ctx context.Context, p ReportPayload) error {
	return d.enqueue(ctx, QueueReport, "report", p)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// requeue pushes a failed job back with an incremented attempt counter.
func (d *Dispatcher) requeue(ctx context.Context, queue string, job Job) error {
	job.Attempts++
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}
