package provisioning

import (
	"fmt"
	"time"
)

// RunPhases executes the provisioning phases in order, emitting a lifecycle
// event as each phase starts and finishes. The first failing phase stops the
// run; anything the engine already materialized is left for it to roll back.
func RunPhases(ctx *Context, phases []Phase) error {
	for i, phase := range phases {
		start := time.Now()

		ctx.Observer.Event(Event{
			Type:    EventPhaseStarted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("phase %d/%d", i+1, len(phases)),
		})

		if err := phase.Provision(ctx); err != nil {
			ctx.Observer.Event(Event{
				Type:    EventPhaseFailed,
				Phase:   phase.Name(),
				Message: err.Error(),
			})
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}

		ctx.Observer.Event(Event{
			Type:    EventPhaseCompleted,
			Phase:   phase.Name(),
			Message: fmt.Sprintf("completed in %s", time.Since(start).Round(time.Millisecond)),
		})
	}
	return nil
}
