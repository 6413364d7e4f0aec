package sources

import (
	"fmt"

	"github.com/MrSnakeDoc/agenda/internal/domain"
)

// Batch is the result of one fetch: the valid events in source order and
// the reasons the other records were skipped.
type Batch struct {
	Events  []domain.Event
	Skipped []error
}

// Add keeps ev when err is nil and ev validates, otherwise records why it was skipped.
func (b *Batch) Add(ev domain.Event, err error) {
	if err == nil {
		err = ev.Validate()
	}
	if err != nil {
		b.Skipped = append(b.Skipped, err)
		return
	}
	b.Events = append(b.Events, ev)
}

// StatusError is returned when a remote source answers with a non-2xx status.
type StatusError struct {
	Source string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Source, e.Code)
}
