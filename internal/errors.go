package internal

import "errors"

var (
	// ErrInvalidLocaleDefinition is returned when a locale entry has neither a locale id nor a name.
	ErrInvalidLocaleDefinition = errors.New("translations: locale definition must include a locale or a name")

	// ErrNoLoader is reported when namespaces must be loaded but no loader is configured.
	ErrNoLoader = errors.New("translations: no namespace loader configured")

	// ErrUnknownLocale is reported when an operation targets a locale that is not registered.
	ErrUnknownLocale = errors.New("translations: locale is not registered")

	// ErrInvalidConfig is returned when a configuration document cannot be decoded.
	ErrInvalidConfig = errors.New("translations: invalid configuration")
)
