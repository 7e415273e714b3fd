package job

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Manager runs periodic tasks in-process on cron schedules.
// A task that is still running when its next tick fires is skipped.
type Manager struct {
	cron       *cron.Cron
	ctx        context.Context
	tasks      map[string]scheduledHandler
	entries    map[string]cron.EntryID
	logger     *slog.Logger
	order      []string
	cancel     context.CancelFunc
	startup    sync.WaitGroup
	mu         sync.Mutex
	runOnStart bool
	started    bool
}

// NewManager creates a scheduler with the given tasks.
// Schedules are validated here; Start begins ticking.
func NewManager(opts ...Option) (*Manager, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{
		tasks:      make(map[string]scheduledHandler, len(cfg.schedules)),
		entries:    make(map[string]cron.EntryID, len(cfg.schedules)),
		logger:     cfg.logger,
		runOnStart: cfg.runOnStart,
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	m.cron = cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cronLogger{m.logger})),
		cron.WithLogger(cronLogger{m.logger}),
	)

	for _, sched := range cfg.schedules {
		if _, exists := m.tasks[sched.name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTask, sched.name)
		}
		schedule, err := parser.Parse(sched.schedule)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidSchedule, sched.schedule, err)
		}

		name := sched.name
		m.tasks[name] = sched.handler
		m.order = append(m.order, name)
		m.entries[name] = m.cron.Schedule(schedule, cron.FuncJob(func() {
			_ = m.run(m.baseContext(), name)
		}))
	}

	return m, nil
}

// Start begins running tasks on their schedules.
// Task contexts derive from ctx and are canceled by Stop. Run-on-start
// executions share the scheduled job, so a tick firing while one is still
// running is skipped.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	var initial []cron.Job
	if m.runOnStart {
		for _, name := range m.order {
			initial = append(initial, m.cron.Entry(m.entries[name]).WrappedJob)
		}
	}

	m.ctx, m.cancel = context.WithCancel(context.WithoutCancel(ctx))
	m.started = true
	m.cron.Start()

	m.logger.Info("job scheduler started", slog.Int("tasks", len(m.tasks)))

	for _, j := range initial {
		m.startup.Go(j.Run)
	}
	return nil
}

// Stop stops scheduling and waits for running tasks, including run-on-start
// executions, until ctx is done.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return ErrNotStarted
	}
	m.started = false
	cancel := m.cancel
	m.mu.Unlock()

	cronDone := m.cron.Stop()
	cancel()

	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		m.startup.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	m.logger.Info("job scheduler stopped")
	return nil
}

// Shutdown returns a shutdown hook for the scheduler.
func (m *Manager) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Stop(ctx)
	}
}

// RunNow executes a task immediately, outside its schedule.
func (m *Manager) RunNow(ctx context.Context, name string) error {
	if _, ok := m.tasks[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTask, name)
	}
	return m.run(ctx, name)
}

// Tasks returns the registered task names in registration order.
func (m *Manager) Tasks() []string {
	return append([]string(nil), m.order...)
}

func (m *Manager) baseContext() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}

func (m *Manager) run(ctx context.Context, name string) error {
	start := time.Now()
	m.logger.DebugContext(ctx, "executing task", slog.String("task", name))

	if err := m.tasks[name](ctx); err != nil {
		m.logger.ErrorContext(ctx, "task failed",
			slog.String("task", name),
			slog.Any("error", err),
		)
		return err
	}

	m.logger.DebugContext(ctx, "task completed",
		slog.String("task", name),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// cronLogger adapts slog to the cron.Logger interface.
type cronLogger struct {
	log *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(keysAndValues, slog.Any("error", err))...)
}
