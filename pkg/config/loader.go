package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type cached struct {
	once  sync.Once
	value any
	err   error
}

var (
	cache        sync.Map // type name -> *cached
	dotenvLoaded sync.Once
)

// Load fills v from environment variables according to its `env` tags.
// The .env file in the working directory, if any, is read on the first call.
// Each config type is parsed once; later calls copy the cached value.
//
//	type ToastConfig struct {
//		DismissDelay time.Duration `env:"TOAST_DISMISS_DELAY" envDefault:"5s"`
//	}
//
//	var cfg ToastConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
func Load[T any](v *T) error {
	dotenvLoaded.Do(func() {
		// a missing .env file is fine
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	entry, _ := cache.LoadOrStore(typeName[T](), &cached{})
	c := entry.(*cached)
	c.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			c.err = errors.Join(ErrParsingConfig, err)
			return
		}
		c.value = parsed
	})
	if c.err != nil {
		return c.err
	}

	val, ok := c.value.(T)
	if !ok {
		return ErrConfigNotLoaded
	}
	*v = val
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	t := reflect.TypeFor[T]()
	return t.PkgPath() + "." + t.String()
}
