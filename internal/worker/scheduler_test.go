package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextRun_BeforeHourRunsSameDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 30, 0, 0, time.Local)
	next := nextRun(now, 22)
	assert.Equal(t, time.Date(2025, 3, 10, 22, 0, 0, 0, time.Local), next)
}

func TestNextRun_AfterHourRollsToNextDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 22, 0, 1, 0, time.Local)
	next := nextRun(now, 22)
	assert.Equal(t, time.Date(2025, 3, 11, 22, 0, 0, 0, time.Local), next)
}

func TestNextRun_ExactlyAtHourRollsToNextDay(t *testing.T) {
	now := time.Date(2025, 3, 10, 22, 0, 0, 0, time.Local)
	next := nextRun(now, 22)
	assert.Equal(t, time.Date(2025, 3, 11, 22, 0, 0, 0, time.Local), next)
}
