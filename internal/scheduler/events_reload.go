package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/MrSnakeDoc/agenda/internal/fetcher"
	"github.com/MrSnakeDoc/agenda/internal/logger"
)

// EventsReloader drives the events fetcher: once at start, then on manual
// trigger and, when a schedule is configured, on cron ticks.
type EventsReloader struct {
	fetcher       *fetcher.Fetcher
	logger        logger.Logger
	schedule      cron.Schedule
	spec          string
	cron          *cron.Cron
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
}

// NewEventsReloader creates a reloader. An empty spec disables periodic refresh.
// manualTrigger should be buffered with capacity 1 so triggers coalesce.
func NewEventsReloader(
	f *fetcher.Fetcher,
	log logger.Logger,
	spec string,
	manualTrigger chan struct{},
) (*EventsReloader, error) {
	er := &EventsReloader{
		fetcher:       f,
		logger:        log,
		spec:          spec,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
	if spec != "" {
		schedule, err := cron.ParseStandard(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
		}
		er.schedule = schedule
	}
	return er, nil
}

// Start runs the first fetch in the background and returns immediately.
// The grid shows its pending state until that fetch settles.
func (er *EventsReloader) Start(ctx context.Context) error {
	if er.schedule != nil {
		er.cron = cron.New()
		er.cron.Schedule(er.schedule, cron.FuncJob(func() {
			if !er.Trigger() {
				er.logger.Debug("scheduled reload skipped, one is already queued")
			}
		}))
		er.cron.Start()
		er.logger.Info("events refresh scheduled", logger.String("cron", er.spec))
	}

	go func() {
		er.reload(ctx)
		for {
			select {
			case <-er.manualTrigger:
				er.logger.Info("events reload triggered")
				er.reload(ctx)
			case <-er.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Trigger queues a reload. It returns false when one is already queued.
func (er *EventsReloader) Trigger() bool {
	select {
	case er.manualTrigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Stop stops the reloader and its cron schedule
func (er *EventsReloader) Stop() {
	er.stopOnce.Do(func() {
		close(er.stopCh)
		if er.cron != nil {
			<-er.cron.Stop().Done()
		}
	})
}

func (er *EventsReloader) reload(ctx context.Context) {
	er.fetcher.Run(ctx)
}
