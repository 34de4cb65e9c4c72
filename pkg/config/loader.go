package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// cache keeps one parsed copy per configuration type.
type cache struct {
	mu     sync.RWMutex
	values map[string]any
	onces  map[string]*sync.Once
}

var (
	global = newCache()

	defaultEnvLoaded sync.Once
)

func newCache() *cache {
	return &cache{
		values: make(map[string]any),
		onces:  make(map[string]*sync.Once),
	}
}

// Load parses environment variables into v according to its env tags.
// The first call loads ./.env when present. Every configuration type is
// parsed once; later calls copy the cached value into v.
//
//	type Config struct {
//		Addr      string `env:"FORMKIT_HTTP_ADDR" envDefault:":8080"`
//		SchemaDir string `env:"FORMKIT_SCHEMA_DIR,required"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// .env is optional
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	name := typeName[T]()
	if global.get(name, v) {
		return nil
	}

	global.mu.Lock()
	once, ok := global.onces[name]
	if !ok {
		once = new(sync.Once)
		global.onces[name] = once
	}
	global.mu.Unlock()

	var err error
	once.Do(func() {
		if perr := env.Parse(v); perr != nil {
			err = errors.Join(ErrParsingConfig, perr)
			global.mu.Lock()
			// a failed parse may be retried after the environment is fixed
			delete(global.onces, name)
			global.mu.Unlock()
			return
		}
		global.mu.Lock()
		global.values[name] = *v
		global.mu.Unlock()
	})
	if err != nil {
		return err
	}

	if global.get(name, v) {
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad is Load that panics on error. Use it for configuration the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("load configuration: %v", err))
	}
}

// LoadEnv loads the given .env files into the process environment. Values
// already set in the environment win.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil {
		return errors.Join(ErrLoadingEnvFile, err)
	}
	return nil
}

// ResetCache forgets every parsed configuration. It exists for tests that
// change the environment between loads.
func ResetCache() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.values = make(map[string]any)
	global.onces = make(map[string]*sync.Once)
}

func (c *cache) get(name string, v any) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cached, ok := c.values[name]
	if !ok {
		return false
	}
	reflect.ValueOf(v).Elem().Set(reflect.ValueOf(cached))
	return true
}

func typeName[T any]() string {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t.PkgPath() + "." + t.String()
}
