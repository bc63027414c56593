package config

import "time"

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"jobportal"`
	Password string `env:"PASSWORD" envDefault:"jobportal"`
	Name     string `env:"NAME"     envDefault:"jobportal"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	Addr     string `env:"ADDR"     envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}

// CacheConfig contains cache behavior configuration.
type CacheConfig struct {
	// PublicListingTTL bounds how stale the cached public job listing may get.
	PublicListingTTL time.Duration `env:"CACHE_PUBLIC_LISTING_TTL" envDefault:"30s"`
}
