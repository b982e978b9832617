package sim

import (
	"errors"
	"log/slog"
	"testing"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		LogLevel:   slog.LevelWarn,
		MaxTicks:   2000,
		Workers:    4,
		Seed:       42,
		WeaponRate: 0.5,
		UndoRate:   0.1,
	}
	if cfg != want {
		t.Fatalf("defaults = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("BATTLE_SEED", "99")
	t.Setenv("BATTLE_WORKERS", "2")
	t.Setenv("BATTLE_SCENARIO", "scenarios/ambush.yaml")
	t.Setenv("BATTLE_FLEE_RATE", "0.25")
	t.Setenv("BATTLE_LOG_LEVEL", "debug")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Seed != 99 || cfg.Workers != 2 || cfg.Scenario != "scenarios/ambush.yaml" ||
		cfg.FleeRate != 0.25 || cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"BATTLE_MAX_TICKS":   "0",
		"BATTLE_WORKERS":     "-1",
		"BATTLE_WEAPON_RATE": "1.5",
		"BATTLE_UNDO_RATE":   "-0.1",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, val)
			_, err := LoadConfig()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("%s=%s: err = %v, want ErrInvalidConfig", key, val, err)
			}
		})
	}
}

func TestLoadConfig_ParseError(t *testing.T) {
	t.Setenv("BATTLE_SEED", "lots")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected a parse error")
	}
}
