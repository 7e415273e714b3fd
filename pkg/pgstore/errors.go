package pgstore

import "errors"

var (
	ErrEmptyConnectionURL       = errors.New("pgstore: empty connection URL")
	ErrFailedToParseDBConfig    = errors.New("pgstore: failed to parse database configuration")
	ErrFailedToOpenDBConnection = errors.New("pgstore: failed to open database connection")
	ErrHealthcheckFailed        = errors.New("pgstore: healthcheck failed")
	ErrSetDialect               = errors.New("pgstore migrator: failed to set dialect")
	ErrApplyMigrations          = errors.New("pgstore migrator: failed to apply migrations")
	ErrInvalidArgument          = errors.New("pgstore: locale and namespace are required")
	ErrQueryFailed              = errors.New("pgstore: query failed")
)
