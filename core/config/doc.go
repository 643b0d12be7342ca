// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads a .env file from the working directory on
// first use and uses the caarlos0/env library for parsing environment
// variables into struct fields. Variables already present in the process
// environment win over the file.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/dds/core/config"
//
//	func main() {
//		var cfg dds.Config
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//
//		participant := dds.NewDomainParticipant(cfg.DomainID)
//		defer participant.Close()
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 dds.Config
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 dds.Config
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// A load that fails is not cached, so fixing the environment and calling
// Load again retries the parse.
//
// Different types are cached independently:
//
//	type MetricsConfig struct {
//		Addr string `env:"METRICS_ADDR" envDefault:":9090"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&dds.Config{})
//	config.MustLoad(&MetricsConfig{})
package config
