package room

import "time"

// startRoundTimer (re)arms the per-room countdown. Any previously running
// timer for the room is cancelled first; ticks from it carry a stale
// generation and are dropped by handleTimerTick.
func (r *Room) startRoundTimer() {
	r.stopRoundTimer()

	r.timerGen++
	r.timeLeft = r.cfg.LevelTime

	gen := r.timerGen
	stop := make(chan struct{})
	r.timerStop = stop

	go func() {
		ticker := time.NewTicker(r.cfg.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-r.ctx.Done():
				return
			case <-ticker.C:
				select {
				case r.inbox <- timerTick{gen: gen}:
				case <-stop:
					return
				case <-r.ctx.Done():
					return
				}
			}
		}
	}()
}

func (r *Room) stopRoundTimer() {
	if r.timerStop != nil {
		close(r.timerStop)
		r.timerStop = nil
	}
	// Ticks already queued in the inbox become stale.
	r.timerGen++
}

// graceTimer is one pending teardown window. A nil *graceTimer is valid:
// cancel is a no-op and matches never succeeds, so cancellation is idempotent
// and fires from cancelled windows are ignored.
type graceTimer struct {
	timer     *time.Timer
	gen       int
	cancelled bool
}

func (r *Room) startGrace(kind graceKind, prev *graceTimer) *graceTimer {
	prev.cancel()

	gen := 0
	if prev != nil {
		gen = prev.gen + 1
	}
	g := &graceTimer{gen: gen}
	g.timer = time.AfterFunc(r.cfg.GracePeriod, func() {
		select {
		case r.inbox <- graceExpired{kind: kind, gen: gen}:
		case <-r.ctx.Done():
		}
	})
	return g
}

func (g *graceTimer) cancel() {
	if g == nil || g.cancelled {
		return
	}
	g.cancelled = true
	g.timer.Stop()
}

func (g *graceTimer) matches(gen int) bool {
	return g != nil && !g.cancelled && g.gen == gen
}
