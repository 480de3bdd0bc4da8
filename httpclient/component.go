package httpclient

import (
	"context"

	"github.com/kbukum/dispatch/component"
)

// Component wraps a Dispatcher with lifecycle management.
type Component struct {
	dispatcher *Dispatcher
	config     Config
	opts       []Option
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new Dispatcher component.
// The Dispatcher is created lazily in Start().
func NewComponent(cfg Config, opts ...Option) *Component {
	return &Component{config: cfg, opts: opts}
}

// Name returns the component name.
func (c *Component) Name() string {
	name := c.config.Name
	if name == "" {
		name = "http"
	}
	return name
}

// Start initializes the Dispatcher.
func (c *Component) Start(_ context.Context) error {
	d, err := New(c.config, c.opts...)
	if err != nil {
		return err
	}
	c.dispatcher = d
	return nil
}

// Stop releases the Dispatcher's idle connections.
func (c *Component) Stop(ctx context.Context) error {
	if c.dispatcher != nil {
		return c.dispatcher.Close(ctx)
	}
	return nil
}

// Health reports healthy once the Dispatcher has been started.
func (c *Component) Health(_ context.Context) component.Health {
	if c.dispatcher == nil {
		return component.Health{
			Name:    c.Name(),
			Status:  component.StatusUnhealthy,
			Message: "not started",
		}
	}
	return component.Health{
		Name:   c.Name(),
		Status: component.StatusHealthy,
	}
}

// Describe returns component description for the startup summary.
func (c *Component) Describe() component.Description {
	return component.Description{
		Name:    c.Name(),
		Type:    "http-dispatcher",
		Details: c.config.BaseURL,
	}
}

// Dispatcher returns the underlying Dispatcher. Must be called after Start().
func (c *Component) Dispatcher() *Dispatcher {
	return c.dispatcher
}
