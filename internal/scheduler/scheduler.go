// Package scheduler runs monthly billing for every gym on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"flexio/internal/billing"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

type BillingRunner interface {
	ProcessMonthlyBilling(ctx context.Context, gymID uint) (*billing.Result, error)
}

type GymLister interface {
	ListIDs(ctx context.Context) ([]uint, error)
}

// Summary counts outcomes of one run over all gyms.
type Summary struct {
	Gyms     int            `json:"gyms"`
	Billed   int            `json:"billed"`
	Outcomes map[string]int `json:"outcomes"`
	Errors   int            `json:"errors"`
}

type BillingScheduler struct {
	runner      BillingRunner
	gyms        GymLister
	concurrency int
	timeout     time.Duration
	loc         *time.Location
	logger      *slog.Logger

	cron    *cron.Cron
	mu      sync.Mutex
	started bool
}

func New(runner BillingRunner, gyms GymLister, schedule string, loc *time.Location, concurrency int, logger *slog.Logger) (*BillingScheduler, error) {
	if concurrency <= 0 {
		concurrency = 1
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &BillingScheduler{
		runner:      runner,
		gyms:        gyms,
		concurrency: concurrency,
		timeout:     30 * time.Minute,
		loc:         loc,
		logger:      logger,
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	s.cron = cron.New(
		cron.WithParser(parser),
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := s.cron.AddFunc(schedule, s.tick); err != nil {
		return nil, fmt.Errorf("invalid billing schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *BillingScheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	sum, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("scheduled billing failed", "error", err)
		return
	}
	s.logger.Info("scheduled billing finished", "gyms", sum.Gyms, "billed", sum.Billed, "errors", sum.Errors)
}

// RunOnce bills every gym with at most concurrency gyms in flight. A failure
// for one gym is counted and logged; it does not stop the others.
func (s *BillingScheduler) RunOnce(ctx context.Context) (Summary, error) {
	ids, err := s.gyms.ListIDs(ctx)
	if err != nil {
		return Summary{}, err
	}
	sum := Summary{Gyms: len(ids), Outcomes: map[string]int{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for _, id := range ids {
		g.Go(func() error {
			res, err := s.runner.ProcessMonthlyBilling(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				sum.Errors++
				s.logger.Error("billing gym failed", "gym_id", id, "error", err)
				return nil
			}
			outcome := string(res.Reason)
			if outcome == "" {
				outcome = "billed"
				sum.Billed++
			}
			sum.Outcomes[outcome]++
			return nil
		})
	}
	err = g.Wait()
	return sum, err
}

func (s *BillingScheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.cron.Start()
	s.started = true
}

// Stop waits for a running job to finish or ctx to expire.
func (s *BillingScheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Next returns the next scheduled run.
func (s *BillingScheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	return entries[0].Schedule.Next(time.Now().In(s.loc))
}
