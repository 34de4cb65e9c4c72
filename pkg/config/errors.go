package config

import "errors"

var (
	// ErrParsingConfig is returned when the environment cannot be parsed into
	// the configuration struct.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrLoadingEnvFile is returned by LoadEnv when a file cannot be read.
	ErrLoadingEnvFile = errors.New("failed to load env file")

	// ErrConfigNotLoaded is returned when a configuration could not be
	// obtained from the cache after parsing.
	ErrConfigNotLoaded = errors.New("configuration has not been loaded")

	// ErrNilPointer is returned when Load is given a nil pointer.
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
