package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/agenda/internal/index"
	"github.com/MrSnakeDoc/agenda/internal/logger"
	"github.com/MrSnakeDoc/agenda/internal/sources"
)

// maxLoggedSkips bounds the reasons attached to the skipped-records warning
const maxLoggedSkips = 5

// Source produces the events listing
type Source interface {
	Name() string
	Fetch(ctx context.Context) (sources.Batch, error)
}

// Outcome summarizes one run
type Outcome struct {
	Status   index.Status
	Count    int
	Skipped  int
	Duration time.Duration
	Err      error
}

// Fetcher runs a Source once and publishes the result into the index
type Fetcher struct {
	source  Source
	index   *index.EventIndex
	logger  logger.Logger
	timeout time.Duration
}

// New creates a fetcher. A zero timeout leaves the run unbounded.
func New(source Source, idx *index.EventIndex, log logger.Logger, timeout time.Duration) *Fetcher {
	return &Fetcher{
		source:  source,
		index:   idx,
		logger:  log,
		timeout: timeout,
	}
}

// SourceName returns the name of the wrapped source
func (f *Fetcher) SourceName() string {
	return f.source.Name()
}

// Run performs a single best-effort fetch. Failures are logged and recorded
// in the index as StatusFailed; they are reported in the Outcome, never returned.
func (f *Fetcher) Run(ctx context.Context) (out Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("source %s panicked: %v", f.source.Name(), r)
			out = f.fail(err, start)
		}
	}()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	batch, err := f.source.Fetch(ctx)
	if err != nil {
		return f.fail(err, start)
	}

	if len(batch.Skipped) > 0 {
		reasons := make([]string, 0, maxLoggedSkips)
		for i, e := range batch.Skipped {
			if i == maxLoggedSkips {
				break
			}
			reasons = append(reasons, e.Error())
		}
		f.logger.Warn("skipped malformed events",
			logger.String("source", f.source.Name()),
			logger.Int("count", len(batch.Skipped)),
			logger.Strings("reasons", reasons))
	}

	f.index.UpdateEvents(batch.Events)
	out = Outcome{
		Status:   f.index.Status(),
		Count:    f.index.Count(),
		Skipped:  len(batch.Skipped),
		Duration: time.Since(start),
	}

	f.logger.Info("events fetched",
		logger.String("source", f.source.Name()),
		logger.String("status", string(out.Status)),
		logger.Int("count", out.Count),
		logger.Duration("duration", out.Duration))

	return out
}

func (f *Fetcher) fail(err error, start time.Time) Outcome {
	f.logger.Error("failed to fetch events",
		logger.String("source", f.source.Name()),
		logger.Error(err))
	f.index.Fail(err)
	return Outcome{
		Status:   index.StatusFailed,
		Duration: time.Since(start),
		Err:      err,
	}
}
