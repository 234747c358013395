package engine

import (
	"fmt"
	"os"

	"github.com/leafcycle/plantcare-backend/internal/logger"
	"github.com/leafcycle/plantcare-backend/internal/utils"

	"gopkg.in/yaml.v3"
)

// Config holds the engine tuning knobs. Defaults reproduce the
// original behavior exactly: sensor ingest skips decay and the action
// log grows without bound.
type Config struct {
	// DecayOnSensorIngest unifies the care/sensor paths by applying the
	// decay pass before sensor mapping too. Off by default.
	DecayOnSensorIngest bool `yaml:"decay_on_sensor_ingest"`
	// ActionLogCap truncates the embedded action log to the newest N
	// entries on each care action. Zero means unbounded.
	ActionLogCap int `yaml:"action_log_cap"`
}

func DefaultConfig() Config {
	return Config{
		DecayOnSensorIngest: false,
		ActionLogCap:        0,
	}
}

// LoadConfig reads the optional YAML tuning file at path (empty path
// means defaults only), then applies ENGINE_DECAY_ON_SENSOR_INGEST and
// ENGINE_ACTION_LOG_CAP env overrides on top.
func LoadConfig(path string, log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read engine config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse engine config %s: %w", path, err)
		}
	}

	cfg.DecayOnSensorIngest = utils.GetEnvAsBool("ENGINE_DECAY_ON_SENSOR_INGEST", cfg.DecayOnSensorIngest, log)
	cfg.ActionLogCap = utils.GetEnvAsInt("ENGINE_ACTION_LOG_CAP", cfg.ActionLogCap, log)
	if cfg.ActionLogCap < 0 {
		cfg.ActionLogCap = 0
	}
	return cfg, nil
}
