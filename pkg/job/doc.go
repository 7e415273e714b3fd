// Package job runs periodic background tasks in-process on cron schedules.
//
// Tasks are registered up front and validated by NewManager:
//
//	m, err := job.NewManager(
//	    job.WithLogger(log),
//	    job.WithRunOnStart(),
//	    job.WithSchedule("preload_fallbacks", "@every 10m", func(ctx context.Context) error {
//	        tr.PreloadFallbacks(ctx)
//	        return nil
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//	if err := m.Start(ctx); err != nil {
//	    return err
//	}
//	defer m.Stop(context.Background())
//
// Schedules use 5-field cron expressions (min hour day month weekday) or
// descriptors such as "@hourly" and "@every 5m". A run that overlaps the
// previous one is skipped.
package job
