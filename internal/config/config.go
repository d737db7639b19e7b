// Package config loads the planning configuration: per-department stage
// vocabularies, capacity constants and the write debounce window.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/loadsheet/internal/domain"
	"github.com/alexanderramin/loadsheet/internal/planner"
	"gopkg.in/yaml.v3"
)

// Config is the YAML-backed planning configuration. Missing fields fall
// back to the compiled-in defaults.
type Config struct {
	// HoursPerResourceWeek converts hours to headcount-equivalents for
	// departments whose capacity is expressed in headcount.
	HoursPerResourceWeek float64 `yaml:"hours_per_resource_week"`
	// HoursDepartment is the one department whose occupancy is counted
	// in raw hours.
	HoursDepartment string `yaml:"hours_department"`
	// WriteDebounceMillis coalesces rapid repeated capacity edits to the
	// same record into a single persisted write.
	WriteDebounceMillis int `yaml:"write_debounce_ms"`
	// Stages maps department codes to their ordered stage vocabulary;
	// later entries carry higher display priority.
	Stages map[string][]string `yaml:"stages"`
}

// Default returns the compiled-in configuration matching the standard
// department vocabularies.
func Default() *Config {
	return &Config{
		HoursPerResourceWeek: planner.DefaultHoursPerResourceWeek,
		HoursDepartment:      string(domain.DeptBUILD),
		WriteDebounceMillis:  500,
		Stages: map[string][]string{
			string(domain.DeptHD): {
				string(domain.StageSwitchLayoutRevision),
				string(domain.StageControlsDesign),
				string(domain.StageRelease),
				string(domain.StageRedLines),
				string(domain.StageSupport),
			},
			string(domain.DeptMED): {
				string(domain.StageConcept),
				string(domain.StageDetailDesign),
				string(domain.StageRelease),
				string(domain.StageRedLines),
				string(domain.StageSupport),
			},
			string(domain.DeptBUILD): {
				string(domain.StageCabinetsFrames),
				string(domain.StageOverallAssembly),
				string(domain.StageFineTuning),
				string(domain.StageCommissioning),
				string(domain.StageSupport),
			},
			string(domain.DeptPRG): {
				string(domain.StageStandardsRev),
				string(domain.StageRobotSimulation),
				string(domain.StageOffline),
				string(domain.StageOnline),
				string(domain.StageDebug),
				string(domain.StageSupport),
			},
		},
	}
}

// Load reads the configuration from path. A missing file yields the
// defaults; a present but unparsable file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HoursPerResourceWeek <= 0 {
		return fmt.Errorf("hours_per_resource_week must be positive, got %v", c.HoursPerResourceWeek)
	}
	if !domain.ValidDepartments[domain.Department(c.HoursDepartment)] {
		return fmt.Errorf("hours_department %q is not a known department", c.HoursDepartment)
	}
	if c.WriteDebounceMillis < 0 {
		return fmt.Errorf("write_debounce_ms must not be negative, got %d", c.WriteDebounceMillis)
	}
	for dept := range c.Stages {
		if !domain.ValidDepartments[domain.Department(dept)] {
			return fmt.Errorf("stages key %q is not a known department", dept)
		}
	}
	return nil
}

// Vocabulary converts the configured stage lists into the planner's
// vocabulary form.
func (c *Config) Vocabulary() planner.StageVocabulary {
	vocab := make(planner.StageVocabulary, len(c.Stages))
	for dept, stages := range c.Stages {
		list := make([]domain.Stage, len(stages))
		for i, s := range stages {
			list[i] = domain.Stage(s)
		}
		vocab[domain.Department(dept)] = list
	}
	return vocab
}

// Aggregator builds the capacity aggregator from the configured
// constants.
func (c *Config) Aggregator() planner.CapacityAggregator {
	return planner.CapacityAggregator{
		HoursDepartment:      domain.Department(c.HoursDepartment),
		HoursPerResourceWeek: c.HoursPerResourceWeek,
	}
}

// WriteDebounce returns the debounce window as a duration.
func (c *Config) WriteDebounce() time.Duration {
	return time.Duration(c.WriteDebounceMillis) * time.Millisecond
}
