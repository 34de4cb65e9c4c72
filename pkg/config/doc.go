// Package config loads process configuration from environment variables
// into tagged structs.
//
// Parsing is delegated to github.com/caarlos0/env/v11 and .env files are
// read with github.com/joho/godotenv. The default ./.env file is loaded on
// the first call to Load; LoadEnv loads additional files explicitly.
//
// Each configuration type is parsed once per process and cached by its
// fully qualified type name. A failed parse is not cached.
//
//	type Config struct {
//		Env       string `env:"FORMKIT_ENV" envDefault:"development"`
//		SchemaDir string `env:"FORMKIT_SCHEMA_DIR" envDefault:"./forms"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// ResetCache clears the cache between tests.
package config
