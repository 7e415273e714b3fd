package job

import "errors"

var (
	ErrAlreadyStarted  = errors.New("job: scheduler already started")
	ErrNotStarted      = errors.New("job: scheduler not started")
	ErrUnknownTask     = errors.New("job: unknown task")
	ErrInvalidSchedule = errors.New("job: invalid cron schedule")
	ErrDuplicateTask   = errors.New("job: duplicate task name")
)
