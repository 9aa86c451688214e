// Package config provides Viper-based configuration loading for the rules engine.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// RulesConfig selects the rules variants applied by the engine.
type RulesConfig struct {
	// CharacterUntrained is the untrained-skill policy for player characters:
	// "penalty" (-20) or "half" (half characteristic).
	CharacterUntrained string `mapstructure:"character_untrained"`
	// NPCUntrained is the untrained-skill policy for NPCs.
	NPCUntrained string `mapstructure:"npc_untrained"`
	// ModifierCap clamps the summed modifier offset to [-cap, +cap]; 0 disables the cap.
	ModifierCap int `mapstructure:"modifier_cap"`
}

// SessionConfig holds roll store settings.
type SessionConfig struct {
	// MaxAge is the age after which stored roll results are evicted.
	MaxAge time.Duration `mapstructure:"max_age"`
}

// ScriptingConfig holds Lua modifier script settings.
type ScriptingConfig struct {
	// Dir is the directory of *.lua modifier scripts; empty disables scripting.
	Dir string `mapstructure:"dir"`
	// InstructionLimit caps the opcodes per script call; 0 uses the default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// ContentConfig points at optional content overrides.
type ContentConfig struct {
	// ArmoryFile is a YAML file of weapon and armour definitions; empty uses the built-in armory.
	ArmoryFile string `mapstructure:"armory_file"`
	// WeaponsDir is a directory of single-weapon YAML files added to the armory; empty adds none.
	WeaponsDir string `mapstructure:"weapons_dir"`
	// PresetsFile is a YAML file of equipment presets; empty uses the built-in set.
	PresetsFile string `mapstructure:"presets_file"`
	// ConditionsDir is a directory of situational condition YAML files; empty uses the built-in set.
	ConditionsDir string `mapstructure:"conditions_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Session   SessionConfig   `mapstructure:"session"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
	Content   ContentConfig   `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRules(c.Rules); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Session.MaxAge < 0 {
		errs = append(errs, "session.max_age must not be negative")
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
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

func validateRules(r RulesConfig) error {
	var errs []string
	validPolicies := map[string]bool{"penalty": true, "half": true}
	if !validPolicies[r.CharacterUntrained] {
		errs = append(errs, fmt.Sprintf("rules.character_untrained must be one of [penalty, half], got %q", r.CharacterUntrained))
	}
	if !validPolicies[r.NPCUntrained] {
		errs = append(errs, fmt.Sprintf("rules.npc_untrained must be one of [penalty, half], got %q", r.NPCUntrained))
	}
	if r.ModifierCap < 0 {
		errs = append(errs, fmt.Sprintf("rules.modifier_cap must be >= 0, got %d", r.ModifierCap))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// Default returns the configuration built from defaults and environment
// overrides alone, for callers running without a config file.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	return LoadFromViper(newViper())
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

func newViper() *viper.Viper {
	v := viper.New()

	// Environment variable overrides with PERCENTILE_ prefix
	v.SetEnvPrefix("PERCENTILE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("rules.character_untrained", "penalty")
	v.SetDefault("rules.npc_untrained", "half")
	v.SetDefault("rules.modifier_cap", 0)

	v.SetDefault("session.max_age", "30m")

	v.SetDefault("scripting.dir", "")
	v.SetDefault("scripting.instruction_limit", 0)

	v.SetDefault("content.armory_file", "")
	v.SetDefault("content.weapons_dir", "")
	v.SetDefault("content.presets_file", "")
	v.SetDefault("content.conditions_dir", "")
}
