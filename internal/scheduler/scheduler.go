package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/stockbook/internal/config"
	"github.com/mamadbah2/stockbook/internal/domain/models"
)

const jobTimeout = 2 * time.Minute

// Summarizer produces the daily report.
type Summarizer interface {
	Daily(day models.Date) (models.Report, error)
}

// Publisher delivers a report somewhere (archive, spreadsheet, chat).
type Publisher interface {
	Name() string
	Publish(ctx context.Context, report models.Report) error
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	loc        *time.Location
	summarizer Summarizer
	publishers []Publisher
	logger     *zap.Logger
	now        func() time.Time
}

// NewScheduler creates a new scheduler instance running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, summarizer Summarizer, publishers []Publisher, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		spec:       cfg.CronSchedule,
		loc:        loc,
		summarizer: summarizer,
		publishers: publishers,
		logger:     logger,
		now:        time.Now,
	}, nil
}

// Start registers the daily summary job and starts the scheduler.
func (s *Scheduler) Start() error {
	if len(s.publishers) == 0 {
		s.logger.Info("no report publishers configured, scheduler idle")
		return nil
	}

	if _, err := s.cron.AddFunc(s.spec, s.sendDailyReport); err != nil {
		return fmt.Errorf("schedule daily report %q: %w", s.spec, err)
	}

	s.logger.Info("starting scheduler", zap.String("schedule", s.spec), zap.String("timezone", s.loc.String()), zap.Int("publishers", len(s.publishers)))
	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) sendDailyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("daily report incomplete", zap.Error(err))
	}
}

// RunOnce summarizes the current day in the scheduler's timezone and hands the
// report to every publisher. A failing publisher does not stop the others;
// their errors are joined.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	day := models.DateOf(s.now().In(s.loc))
	s.logger.Info("generating daily report", zap.Stringer("day", day))

	report, err := s.summarizer.Daily(day)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", day, err)
	}

	var errs []error
	for _, p := range s.publishers {
		if err := p.Publish(ctx, report); err != nil {
			s.logger.Error("failed to publish daily report", zap.String("publisher", p.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}
		s.logger.Info("daily report published", zap.String("publisher", p.Name()), zap.Int("transactions", report.Count))
	}
	return errors.Join(errs...)
}
