// Package config provides Viper-based configuration loading for the initiative tracker.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// MaxRosterSize is the largest roster an encounter may hold.
const MaxRosterSize = 33

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, receives log output instead of stderr.
	File string `mapstructure:"file"`
}

// ContentConfig locates the YAML content the tracker loads at startup.
type ContentConfig struct {
	// BestiaryDir holds one monster stat block per *.yaml file.
	BestiaryDir string `mapstructure:"bestiary_dir"`
	// ConditionsDir holds one condition reference entry per *.yaml file.
	ConditionsDir string `mapstructure:"conditions_dir"`
	// PartyFile is an optional YAML list of player characters.
	PartyFile string `mapstructure:"party_file"`
}

// EncounterConfig controls how a roster is assembled.
type EncounterConfig struct {
	// RollHitPoints rolls each monster's starting hit points from its hit dice.
	RollHitPoints bool `mapstructure:"roll_hit_points"`
	// RollInitiative rolls d20 + modifier for each combatant and orders the roster.
	RollInitiative bool `mapstructure:"roll_initiative"`
	// MaxCombatants caps the roster size.
	MaxCombatants int `mapstructure:"max_combatants"`
	// Color enables ANSI color in rendered output.
	Color bool `mapstructure:"color"`
	// Seed makes every roll reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Content   ContentConfig   `mapstructure:"content"`
	Encounter EncounterConfig `mapstructure:"encounter"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateEncounter(c.Encounter); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.BestiaryDir == "" {
		errs = append(errs, "content.bestiary_dir must not be empty")
	}
	if c.ConditionsDir == "" {
		errs = append(errs, "content.conditions_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateEncounter(e EncounterConfig) error {
	if e.MaxCombatants < 1 || e.MaxCombatants > MaxRosterSize {
		return fmt.Errorf("encounter.max_combatants must be 1-%d, got %d", MaxRosterSize, e.MaxCombatants)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := Defaults()
	v.SetConfigFile(path)

	// Environment variable overrides with INITIATIVE_ prefix
	v.SetEnvPrefix("INITIATIVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")

	v.SetDefault("content.bestiary_dir", "content/bestiary")
	v.SetDefault("content.conditions_dir", "content/conditions")
	v.SetDefault("content.party_file", "")

	v.SetDefault("encounter.roll_hit_points", false)
	v.SetDefault("encounter.roll_initiative", false)
	v.SetDefault("encounter.max_combatants", MaxRosterSize)
	v.SetDefault("encounter.color", true)
	v.SetDefault("encounter.seed", 0)
}
