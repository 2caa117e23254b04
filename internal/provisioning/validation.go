package provisioning

import (
	"fmt"

	"github.com/apac-ml-tfc/forecast-poc/internal/template"
)

// ValidationPhase checks the configuration against the constraints the
// template declares and renders the template body. It runs before any API
// call, so constraint violations are rejected with no resource created.
type ValidationPhase struct{}

// NewValidationPhase creates the pre-flight validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements Phase.
func (p *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements Phase.
func (p *ValidationPhase) Provision(ctx *Context) error {
	if err := ctx.Config.Validate(); err != nil {
		ctx.Observer.Event(Event{
			Type:    EventValidationError,
			Phase:   p.Name(),
			Message: err.Error(),
		})
		return err
	}

	tpl := template.New()
	if ctx.Config.Studio.Enabled {
		tpl = template.NewStudio()
	}
	body, err := tpl.Render()
	if err != nil {
		return fmt.Errorf("template synthesis failed: %w", err)
	}
	ctx.State.TemplateBody = string(body)

	return nil
}
