// Package scheduler wires up the cron job that periodically triggers a
// pipeline run while the API server is up.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Runner triggers one blocking pipeline run.
type Runner interface {
	RunETL(ctx context.Context) (int, error)
}

// Scheduler wraps robfig/cron around the pipeline runner.
type Scheduler struct {
	cron   *cron.Cron
	runner Runner
	spec   string
}

// New creates a Scheduler that fires every intervalHours hours.
func New(runner Runner, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		runner: runner,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. One run fires immediately
// so the catalog is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] started, spec: %s", s.spec)

	go s.runOnce(ctx)
	return nil
}

// Stop shuts down the scheduler. Already-running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] stopped")
}

func (s *Scheduler) runOnce(ctx context.Context) {
	newCount, err := s.runner.RunETL(ctx)
	if err != nil {
		log.Printf("[scheduler] pipeline run failed: %v", err)
		return
	}
	log.Printf("[scheduler] pipeline run complete, new records: %d", newCount)
}
