// Package scheduler drives the poll loop on a fixed interval.
package scheduler

import (
	"context"
	"time"

	"followerwatch/internal/logger"
)

// Interval runs a task immediately and then repeatedly with a fixed sleep
// between runs. There is no alignment, jitter or backoff; a failed run waits
// the same interval as a successful one.
type Interval struct {
	Every time.Duration

	ctx context.Context
}

func NewInterval(ctx context.Context, every time.Duration) *Interval {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Interval{Every: every, ctx: ctx}
}

// Start blocks until the context is done. Cancellation is observed between
// cycles, never mid-task.
func (s *Interval) Start(task func()) {
	if s == nil {
		return
	}
	if task == nil {
		logger.Warnf("Interval: task is nil, exit")
		return
	}
	if s.Every <= 0 {
		logger.Warnf("Interval: invalid interval=%s, exit", s.Every)
		return
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}

	logger.Infof("Interval: started every=%s", s.Every)
	task()

	for {
		logger.Debugf("Interval: sleeping for %s", s.Every)
		timer := time.NewTimer(s.Every)
		select {
		case <-s.ctx.Done():
			timer.Stop()
			logger.Infof("Interval: ctx done, exit")
			return
		case <-timer.C:
		}
		task()
	}
}
