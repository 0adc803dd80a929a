package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Content: ContentConfig{
			BestiaryDir:   "content/bestiary",
			ConditionsDir: "content/conditions",
		},
		Encounter: EncounterConfig{
			MaxCombatants: MaxRosterSize,
		},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: console
content:
  bestiary_dir: /srv/bestiary
  conditions_dir: /srv/conditions
  party_file: /srv/party.yaml
encounter:
  roll_hit_points: true
  roll_initiative: true
  max_combatants: 12
  color: false
  seed: 1234
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/srv/bestiary", cfg.Content.BestiaryDir)
	assert.Equal(t, "/srv/party.yaml", cfg.Content.PartyFile)
	assert.True(t, cfg.Encounter.RollHitPoints)
	assert.True(t, cfg.Encounter.RollInitiative)
	assert.Equal(t, 12, cfg.Encounter.MaxCombatants)
	assert.False(t, cfg.Encounter.Color)
	assert.Equal(t, uint64(1234), cfg.Encounter.Seed)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "content/bestiary", cfg.Content.BestiaryDir)
	assert.Empty(t, cfg.Content.PartyFile)
	assert.Equal(t, MaxRosterSize, cfg.Encounter.MaxCombatants)
	assert.True(t, cfg.Encounter.Color)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "env.yaml")
	require.NoError(t, os.WriteFile(path, []byte("encounter:\n  max_combatants: 4\n"), 0644))
	t.Setenv("INITIATIVE_ENCOUNTER_MAX_COMBATANTS", "8")
	t.Setenv("INITIATIVE_LOGGING_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Encounter.MaxCombatants)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadFromViper_Defaults(t *testing.T) {
	cfg, err := LoadFromViper(Defaults())
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "content/conditions", cfg.Content.ConditionsDir)
}

func TestLoadFromViper_Invalid(t *testing.T) {
	v := Defaults()
	v.Set("encounter.max_combatants", 0)
	_, err := LoadFromViper(v)
	assert.ErrorContains(t, err, "encounter.max_combatants")
}

func TestValidateLogging(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateContent(t *testing.T) {
	cfg := validConfig()
	cfg.Content.BestiaryDir = ""
	cfg.Content.ConditionsDir = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content.bestiary_dir")
	assert.Contains(t, err.Error(), "content.conditions_dir")
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "loud"
	cfg.Encounter.MaxCombatants = 99
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
	assert.Contains(t, err.Error(), "encounter.max_combatants")
}

func TestPropertyMaxCombatantsRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(-50, 100).Draw(t, "n")
		cfg := validConfig()
		cfg.Encounter.MaxCombatants = n
		err := cfg.Validate()
		valid := n >= 1 && n <= MaxRosterSize
		if valid && err != nil {
			t.Fatalf("max_combatants %d should be valid: %v", n, err)
		}
		if !valid && err == nil {
			t.Fatalf("max_combatants %d should be rejected", n)
		}
	})
}
