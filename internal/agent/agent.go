// Package agent orchestrates the fetch -> diff -> notify -> persist cycle.
package agent

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"followerwatch/internal/config"
	"followerwatch/internal/follower"
	"followerwatch/internal/logger"
	"followerwatch/internal/notifier"
	"followerwatch/internal/scheduler"
)

type Fetcher interface {
	Followers(ctx context.Context, username string) (*follower.Set, error)
}

type Store interface {
	Load() *follower.Set
	Save(set *follower.Set) error
	Check() error
}

type Agent struct {
	cfg      *config.Config
	fetcher  Fetcher
	store    Store
	notifier notifier.Notifier

	nowFn func() time.Time
}

func New(cfg *config.Config, fetcher Fetcher, store Store, n notifier.Notifier) *Agent {
	return &Agent{
		cfg:      cfg,
		fetcher:  fetcher,
		store:    store,
		notifier: n,
		nowFn:    time.Now,
	}
}

// RunCycle executes one poll cycle and returns the number of new followers.
// A fetch failure aborts the cycle before anything is persisted, so a
// known-good snapshot is never replaced by a partial result. Notification
// and persistence failures are logged and do not fail the cycle: the
// snapshot is saved regardless of delivery outcome, which trades a possibly
// lost notification for never re-notifying the same followers.
func (a *Agent) RunCycle(ctx context.Context) (int, error) {
	logger.Infof("checking for new followers of %s", a.cfg.GitHub.Username)

	prev := a.store.Load()
	cur, err := a.fetcher.Followers(ctx, a.cfg.GitHub.Username)
	if err != nil {
		return 0, errors.Wrap(err, "fetching followers")
	}

	fresh := follower.Diff(prev, cur)
	if len(fresh) > 0 {
		logger.Infof("notifying about %d new follower(s): %s", len(fresh), strings.Join(fresh, ", "))
		ev := notifier.NewEvent(a.cfg.GitHub.Username, fresh, a.nowFn())
		if err := a.notifier.Deliver(ctx, ev); err != nil {
			logger.Errorf("notification failed: %v", err)
		}
	} else {
		logger.Infof("no new followers found")
	}

	if err := a.store.Save(cur); err != nil {
		logger.Errorf("saving follower snapshot: %v", err)
	}
	return len(fresh), nil
}

// Run polls continuously until the context is cancelled. Each cycle's
// failure is logged and the next cycle is attempted after the same interval.
func (a *Agent) Run(ctx context.Context) {
	logger.Infof("starting continuous monitoring (checking every %s)", a.cfg.CheckInterval)
	sched := scheduler.NewInterval(ctx, a.cfg.CheckInterval)
	sched.Start(func() {
		n, err := a.RunCycle(ctx)
		if err != nil {
			logger.Errorf("check failed: %v", err)
			return
		}
		logger.Infof("check completed, found %d new follower(s)", n)
	})
}

// Test validates the configured notifier and snapshot location without
// fetching or persisting anything.
func (a *Agent) Test() error {
	if err := a.notifier.Check(); err != nil {
		return errors.Wrap(err, "notifier check")
	}
	if err := a.store.Check(); err != nil {
		return errors.Wrap(err, "snapshot check")
	}
	return nil
}
