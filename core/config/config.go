package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once
	cache      sync.Map // reflect.Type -> *entry
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

// Load fills cfg from the environment. The first call for a given type parses
// the environment; later calls copy the cached value. Fields already set in
// cfg on that first call act as defaults for variables without envDefault.
// A failed load is not cached.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		// A missing .env file is the normal case outside local development.
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()
	v, _ := cache.LoadOrStore(key, &entry{})
	e := v.(*entry)

	e.once.Do(func() {
		parsed := *cfg
		e.err = env.Parse(&parsed)
		e.value = parsed
	})

	if e.err != nil {
		cache.CompareAndDelete(key, e)
		return fmt.Errorf("%w: %T: %w", ErrParsingConfig, *cfg, e.err)
	}

	*cfg = e.value.(T)
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
