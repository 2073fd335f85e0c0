package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TariffRate is the placeholder ad-valorem duty rate applied to every
	// good until a real HS-code tariff resolver is wired in.
	TariffRate float64 `env:"TARIFF_RATE, default=0.05"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Benchmark BenchmarkConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=landed_cost"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// BenchmarkConfig points at the external freight benchmark service. An empty
// BaseURL disables benchmark lookups; the engine's default rate tables apply.
type BenchmarkConfig struct {
	BaseURL  string        `env:"BENCHMARK_URL"`
	Timeout  time.Duration `env:"BENCHMARK_TIMEOUT,   default=5s"`
	CacheTTL time.Duration `env:"BENCHMARK_CACHE_TTL, default=1h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
