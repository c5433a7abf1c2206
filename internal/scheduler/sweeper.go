// Package scheduler triggers the expiry sweep on a cron schedule. The
// sweep itself is a synchronous call on the stall usecase, so tests run
// it directly without any scheduling involved.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// SweepFunc is the synchronous sweep entrypoint.
type SweepFunc func(ctx context.Context, now time.Time) error

type Sweeper struct {
	cron  *cron.Cron
	sweep SweepFunc
}

// NewSweeper registers sweep under the given cron expression (standard
// five-field spec, e.g. "0 3 * * *" for daily at 03:00).
func NewSweeper(spec string, sweep SweepFunc) (*Sweeper, error) {
	s := &Sweeper{cron: cron.New(), sweep: sweep}
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sweeper) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	if err := s.sweep(ctx, time.Now().UTC()); err != nil {
		log.Printf("expiry sweep failed: %v", err)
	}
}

func (s *Sweeper) Start() { s.cron.Start() }

// Stop waits for an in-flight sweep to finish before returning.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}
