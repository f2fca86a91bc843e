package configs

import "time"

// Redis configures the compatibility score cache. An empty Address disables
// caching.
type Redis struct {
	Address  string        `env:"ADDRESS"`
	ScoreTTL time.Duration `env:"SCORE_TTL" envDefault:"6h"`
}

// Kafka configures lifecycle event publishing. No brokers disables it.
type Kafka struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"placement-events"`
}

// Ledger selects the settlement collaborator. An empty URL runs the
// in-process simulation.
type Ledger struct {
	URL     string        `env:"URL"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
	// InterTxDelay separates consecutive settlement submissions.
	InterTxDelay time.Duration `env:"INTER_TX_DELAY" envDefault:"1s"`
}

// Scheduler drives the periodic sweeps.
type Scheduler struct {
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Interval time.Duration `env:"INTERVAL" envDefault:"15m"`
}

// Telemetry configures OpenTelemetry tracing. Tracing stays a no-op unless
// Enabled is set and an Endpoint is given.
type Telemetry struct {
	Enabled     bool   `env:"ENABLED" envDefault:"false"`
	Endpoint    string `env:"ENDPOINT"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"castads"`
}
