package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"castads/internal/config/configs"
)

// Store backends.
const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// Config aggregates all configuration sections for the application. Fields
// are populated from environment variables using the caarlos0/env library. The
// nested structs are tagged with envPrefix so their fields are parsed with
// the given prefix. See the individual types in the configs package for
// default values and options. Use Load to construct a Config.
type Config struct {
	// Env specifies the deployment environment (e.g. prod, dev). It is added
	// to every log line.
	Env string `env:"ENV" envDefault:"prod"`

	// Store selects the persistence backend: postgres or memory.
	Store string `env:"STORE" envDefault:"postgres"`

	// PolicyFile optionally points at a YAML file of business tunables.
	PolicyFile string `env:"POLICY_FILE"`

	HTTP      configs.HTTP      `envPrefix:"HTTP_"`
	Log       configs.Logger    `envPrefix:"LOG_"`
	Psql      configs.Postgres  `envPrefix:"PSQL_"`
	AI        configs.AI        `envPrefix:"AI_"`
	Redis     configs.Redis     `envPrefix:"REDIS_"`
	Kafka     configs.Kafka     `envPrefix:"KAFKA_"`
	Ledger    configs.Ledger    `envPrefix:"LEDGER_"`
	Scheduler configs.Scheduler `envPrefix:"SCHEDULER_"`
	Telemetry configs.Telemetry `envPrefix:"OTEL_"`

	// Policy is loaded from PolicyFile after the environment is parsed.
	Policy configs.Policy
}

// Load reads configuration from environment variables into a Config and then
// overlays the policy file. The ledger's inter-transaction delay overrides
// the one in the policy file.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	if cfg.Store != StorePostgres && cfg.Store != StoreMemory {
		return cfg, fmt.Errorf("unknown STORE %q", cfg.Store)
	}
	policy, err := configs.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return cfg, err
	}
	policy.Payout.InterTxDelay = cfg.Ledger.InterTxDelay
	cfg.Policy = policy
	return cfg, nil
}
