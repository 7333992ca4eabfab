package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// StartReportScheduler enqueues one treasury-report job per day at the given
// local hour. The goroutine exits when ctx is cancelled.
func StartReportScheduler(ctx context.Context, d *Dispatcher, hour int) {
	go func() {
		for {
			next := nextRun(time.Now(), hour)
			timer := time.NewTimer(time.Until(next))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			date := time.Now().Format("2006-01-02")
			if err := d.EnqueueDailyReport(ctx, ReportPayload{Date: date}); err != nil {
				log.Error().Err(err).Msg("scheduler: enqueue daily report")
			} else {
				log.Info().Str("date", date).Msg("scheduler: daily report enqueued")
			}
		}
	}()
}

func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
