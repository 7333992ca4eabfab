package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxAttempts = 3

// Handlers holds the per-type job processors. Each handler returns an
// error to trigger a retry; after maxAttempts the job lands in the DLQ.
type Handlers struct {
	Activity func(ctx context.Context, p ActivityPayload) error
	Report   func(ctx context.Context, p ReportPayload) error
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, h Handlers, numWorkers int) {
	d := NewDispatcher(rdb)
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, d, h, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, d *Dispatcher, h Handlers, id int) {
	queues := []string{QueueActivity, QueueReport}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, d, h, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, rdb *redis.Client, d *Dispatcher, h Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	var err error
	switch job.Type {
	case "activity":
		var p ActivityPayload
		if err = json.Unmarshal(job.Payload, &p); err == nil && h.Activity != nil {
			err = h.Activity(ctx, p)
		}
	case "report":
		var p ReportPayload
		if err = json.Unmarshal(job.Payload, &p); err == nil && h.Report != nil {
			err = h.Report(ctx, p)
		}
	default:
		log.Warn().Str("type", job.Type).Str("queue", queue).Msg("unknown job type")
		return
	}

	if err == nil {
		return
	}

	log.Error().Str("type", job.Type).Int("attempts", job.Attempts).Err(err).Msg("job failed")
	if job.Attempts+1 >= maxAttempts {
		SendToDLQ(ctx, rdb, queue, job.Type, job.Payload, err.Error(), job.Attempts+1)
		return
	}
	if rqErr := d.requeue(ctx, queue, job); rqErr != nil {
		log.Error().Err(rqErr).Str("queue", queue).Msg("failed to requeue job")
	}
}
