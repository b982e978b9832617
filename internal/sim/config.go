package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Garsondee/Battle-Sense/internal/config"
)

// EnvPrefix prefixes every variable Config reads.
const EnvPrefix = "BATTLE_"

// ErrInvalidConfig wraps every Config validation failure.
var ErrInvalidConfig = errors.New("invalid sim config")

// Config drives headless runs. Every field can be set from BATTLE_*
// variables; CLI flags override it afterwards.
type Config struct {
	LogLevel   slog.Level `env:"LOG_LEVEL" envDefault:"warn"`
	MaxTicks   int        `env:"MAX_TICKS" envDefault:"2000"`
	Workers    int        `env:"WORKERS" envDefault:"4"`
	Seed       int64      `env:"SEED" envDefault:"42"`
	Scenario   string     `env:"SCENARIO"`
	WeaponRate float64    `env:"WEAPON_RATE" envDefault:"0.5"`
	UndoRate   float64    `env:"UNDO_RATE" envDefault:"0.1"`
	FleeRate   float64    `env:"FLEE_RATE" envDefault:"0"`
}

// LoadConfig reads Config from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnvPrefix(&cfg, EnvPrefix); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxTicks <= 0 {
		return fmt.Errorf("%w: max ticks must be > 0, got %d", ErrInvalidConfig, c.MaxTicks)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be > 0, got %d", ErrInvalidConfig, c.Workers)
	}
	for name, rate := range map[string]float64{"weapon": c.WeaponRate, "undo": c.UndoRate, "flee": c.FleeRate} {
		if rate < 0 || rate > 1 {
			return fmt.Errorf("%w: %s rate %v outside [0,1]", ErrInvalidConfig, name, rate)
		}
	}
	return nil
}
