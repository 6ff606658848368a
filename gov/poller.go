package gov

import (
	"context"
	"time"

	cmtlog "github.com/cometbft/cometbft/libs/log"
)

// Poller re-evaluates every open proposal on a fixed period, plus once at
// startup. It is the only detector of time-based expiry, so a running engine
// always has exactly one poller.
type Poller struct {
	logger   cmtlog.Logger
	engine   *Engine
	interval time.Duration
}

func NewPoller(engine *Engine, interval time.Duration, logger cmtlog.Logger) *Poller {
	return &Poller{
		logger:   logger.With("module", "poller"),
		engine:   engine,
		interval: interval,
	}
}

// Start blocks until ctx is cancelled. The first tick runs immediately so
// proposals that expired while the process was down resolve on startup.
func (po *Poller) Start(ctx context.Context) {
	po.Tick()
	ticker := time.NewTicker(po.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			po.Tick()
		}
	}
}

// Tick runs one full pass over the open proposals.
func (po *Poller) Tick() {
	open, err := po.engine.store.OpenProposals()
	if err != nil {
		po.logger.Error("list open proposals fail", "err", err)
		return
	}
	for _, p := range open {
		if err := po.engine.Recheck(p.Id); err != nil {
			po.logger.Error("recheck proposal fail", "proposal", p.Id, "err", err)
		}
	}
}
