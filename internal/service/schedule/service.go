package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/PareasySys/sysquote-sub002/internal/storage"
)

type Storage interface {
	GetPlans(ctx context.Context) ([]storage.Plan, error)
	GetQuote(ctx context.Context, id uuid.UUID) (*storage.Quote, error)
	GetTrainingRequirements(ctx context.Context, quoteID uuid.UUID) ([]storage.TrainingRequirement, error)
}

// Recorder receives the outcome of every recomputation (metrics).
type Recorder interface {
	RecordRecompute(outcome string, elapsed time.Duration)
}

const (
	OutcomeOK         = "ok"
	OutcomeError      = "error"
	OutcomeSuperseded = "superseded"
)

// Override lets a request flip the weekend toggles stored on the quote.
type Override struct {
	WorkSaturday *bool
	WorkSunday   *bool
}

type Result struct {
	QuoteID        uuid.UUID               `json:"quote_id"`
	Policy         WeekendPolicy           `json:"weekend_policy"`
	PlanOrder      []int64                 `json:"plan_order"`
	Plans          map[int64]PlanGanttData `json:"plans"`
	PlanTotalHours map[int64]float64       `json:"plan_total_hours"`
}

type Service struct {
	storage  Storage
	tracker  *Tracker
	recorder Recorder
}

func NewService(storage Storage, recorder Recorder) *Service {
	return &Service{
		storage:  storage,
		tracker:  NewTracker(),
		recorder: recorder,
	}
}

// Compute reads everything the schedule depends on and rebuilds it from scratch.
// A newer Compute for the same quote cancels this one and makes it return ErrSuperseded.
func (s *Service) Compute(ctx context.Context, quoteID uuid.UUID, override Override) (*Result, error) {
	const op = "service.schedule.Compute"

	started := time.Now()

	runCtx, ticket := s.tracker.Begin(ctx, quoteID)
	defer ticket.Release()

	var (
		plans []storage.Plan
		quote *storage.Quote
		rows  []storage.TrainingRequirement
	)

	g, gCtx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		var err error
		plans, err = s.storage.GetPlans(gCtx)
		if err != nil {
			return fmt.Errorf("plans: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		quote, err = s.storage.GetQuote(gCtx, quoteID)
		if err != nil {
			return fmt.Errorf("quote: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = s.storage.GetTrainingRequirements(gCtx, quoteID)
		if err != nil {
			return fmt.Errorf("requirements: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		if ticket.Superseded() {
			s.record(OutcomeSuperseded, started)
			return nil, ErrSuperseded
		}
		s.record(OutcomeError, started)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	policy := WeekendPolicy{WorkSaturday: quote.WorkOnSaturday, WorkSunday: quote.WorkOnSunday}
	if override.WorkSaturday != nil {
		policy.WorkSaturday = *override.WorkSaturday
	}
	if override.WorkSunday != nil {
		policy.WorkSunday = *override.WorkSunday
	}

	plansData := Build(plans, rows, policy)

	order := make([]int64, 0, len(plans))
	for _, p := range plans {
		order = append(order, p.ID)
	}

	res := &Result{
		QuoteID:        quoteID,
		Policy:         policy,
		PlanOrder:      order,
		Plans:          plansData,
		PlanTotalHours: PlanTotalHours(plansData),
	}

	if err := ticket.Commit(res); err != nil {
		s.record(OutcomeSuperseded, started)
		return nil, err
	}

	s.record(OutcomeOK, started)

	return res, nil
}

// Latest returns the last committed result for the quote, if any.
func (s *Service) Latest(quoteID uuid.UUID) (*Result, bool) {
	return s.tracker.Latest(quoteID)
}

func (s *Service) record(outcome string, started time.Time) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordRecompute(outcome, time.Since(started))
}

// IsNotFound is a helper for handlers that need to map a missing quote to 404.
func IsNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
