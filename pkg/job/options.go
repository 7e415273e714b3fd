package job

import (
	"context"
	"log/slog"
)

// config holds scheduler configuration.
type config struct {
	logger     *slog.Logger
	schedules  []scheduleConfig
	runOnStart bool
}

type scheduleConfig struct {
	handler  scheduledHandler
	name     string
	schedule string
}

// scheduledHandler is a function type for scheduled task handlers.
type scheduledHandler func(context.Context) error

// Option configures the scheduler.
type Option func(*config)

// WithScheduledTask registers a periodic task using structural typing.
// The task must implement Name(), Schedule(), and Handle(ctx) methods.
// Schedule() returns a cron expression (5 fields: min hour day month weekday)
// or a descriptor such as "@every 5m".
//
// Example:
//
//	type PreloadFallbacks struct {
//	    tr *translations.Translations
//	}
//
//	func (t *PreloadFallbacks) Name() string     { return "preload_fallbacks" }
//	func (t *PreloadFallbacks) Schedule() string { return "*/10 * * * *" }
//	func (t *PreloadFallbacks) Handle(ctx context.Context) error {
//	    t.tr.PreloadFallbacks(ctx)
//	    return nil
//	}
//
//	job.WithScheduledTask(&PreloadFallbacks{tr: tr})
func WithScheduledTask[T interface {
	Name() string
	Schedule() string
	Handle(context.Context) error
}](task T) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, scheduleConfig{
			name:     task.Name(),
			schedule: task.Schedule(),
			handler:  task.Handle,
		})
	}
}

// WithSchedule registers a periodic function.
func WithSchedule(name, schedule string, fn func(context.Context) error) Option {
	return func(c *config) {
		c.schedules = append(c.schedules, scheduleConfig{
			name:     name,
			schedule: schedule,
			handler:  fn,
		})
	}
}

// WithRunOnStart runs every task once when the scheduler starts.
func WithRunOnStart() Option {
	return func(c *config) {
		c.runOnStart = true
	}
}

// WithLogger sets the logger for task execution.
// If not set, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
