package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"HTTP_PORT" default:"3100"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
}

type SessionEnv struct {
	Secret       string        `envconfig:"SESSION_SECRET" required:"true"`
	TTL          time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	DemoPassword string        `envconfig:"DEMO_PASSWORD" default:"password"`
}

type StoreEnv struct {
	// SimulatedLatency delays every task store operation.
	SimulatedLatency time.Duration `envconfig:"SIMULATED_LATENCY" default:"0s"`
	SeedEnabled      bool          `envconfig:"SEED_ENABLED" default:"true"`
}

type StorageEnv struct {
	Type    string `envconfig:"STORAGE_TYPE" default:"local"`
	BaseDir string `envconfig:"STORAGE_BASE_DIR" default:"seed"`
	// S3 settings (used when Type == "s3")
	S3Bucket   string `envconfig:"S3_BUCKET"`
	S3Prefix   string `envconfig:"S3_PREFIX" default:"taskmarket/"`
	S3Region   string `envconfig:"S3_REGION" default:"ap-northeast-1"`
	S3Endpoint string `envconfig:"S3_ENDPOINT"`
}

type Env struct {
	BaseEnv
	SessionEnv
	StoreEnv
	StorageEnv
}

const namespace = "TASKMARKET"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	if env.TTL <= 0 {
		return nil, fmt.Errorf("failed to load env: %s_SESSION_TTL must be positive", namespace)
	}
	if env.SimulatedLatency < 0 {
		return nil, fmt.Errorf("failed to load env: %s_SIMULATED_LATENCY must not be negative", namespace)
	}
	return &env, nil
}

func (e *BaseEnv) IsLocal() bool {
	return e.Env == "local"
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelDebug
	}
	return level
}
