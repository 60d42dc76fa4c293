package sim

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config groups the checkpoint model and replication parameters.
// Times are in minutes.
//
// ID checks take exactly CheckTime; scans draw a fresh duration uniformly
// from [PersonalMin, PersonalMax] per passenger.
type Config struct {
	NumWorkers  int     `yaml:"num_workers"`  // ID-check units (must be > 0)
	CheckTime   float64 `yaml:"check_time"`   // fixed ID-check duration
	PassInter   float64 `yaml:"pass_inter"`   // mean interarrival time
	SimTime     float64 `yaml:"sim_time"`     // horizon of one replication
	NumPersonal int     `yaml:"num_personal"` // number of single-unit scanners
	PersonalMin float64 `yaml:"personal_min"` // lower bound of scan duration
	PersonalMax float64 `yaml:"personal_max"` // upper bound of scan duration
	Replicates  int     `yaml:"replicates"`   // replications per staffing level
	BaseSeed    int64   `yaml:"base_seed"`    // seed all replication seeds derive from
	InitialBusy bool    `yaml:"initial_busy"` // spawn NumWorkers passengers at t=0
	Parallelism int     `yaml:"parallelism"`  // concurrent replications per level (1 = sequential)
}

// DefaultConfig returns the reference 8-hour day: 5 checkers, 4 scanners,
// one arrival every 0.02 minutes on average.
func DefaultConfig() Config {
	return Config{
		NumWorkers:  5,
		CheckTime:   0.75,
		PassInter:   0.02,
		SimTime:     480,
		NumPersonal: 4,
		PersonalMin: 0.5,
		PersonalMax: 1.0,
		Replicates:  5,
		BaseSeed:    28,
		InitialBusy: true,
		Parallelism: 1,
	}
}

// Validate reports the first violated constraint, wrapped in ErrInvalidConfig.
// A zero SimTime is allowed and simply produces no completed passengers.
func (c Config) Validate() error {
	switch {
	case c.NumWorkers <= 0:
		return fmt.Errorf("%w: num_workers must be > 0, got %d", ErrInvalidConfig, c.NumWorkers)
	case !(c.CheckTime > 0) || math.IsInf(c.CheckTime, 0):
		return fmt.Errorf("%w: check_time must be finite and > 0, got %v", ErrInvalidConfig, c.CheckTime)
	case !(c.PassInter > 0) || math.IsInf(c.PassInter, 0):
		return fmt.Errorf("%w: pass_inter must be finite and > 0, got %v", ErrInvalidConfig, c.PassInter)
	case !(c.SimTime >= 0) || math.IsInf(c.SimTime, 0):
		return fmt.Errorf("%w: sim_time must be finite and >= 0, got %v", ErrInvalidConfig, c.SimTime)
	case c.NumPersonal <= 0:
		return fmt.Errorf("%w: num_personal must be > 0, got %d", ErrInvalidConfig, c.NumPersonal)
	case !(c.PersonalMin >= 0):
		return fmt.Errorf("%w: personal_min must be >= 0, got %v", ErrInvalidConfig, c.PersonalMin)
	case !(c.PersonalMax >= c.PersonalMin):
		return fmt.Errorf("%w: personal_max (%v) must be >= personal_min (%v)", ErrInvalidConfig, c.PersonalMax, c.PersonalMin)
	case math.IsInf(c.PersonalMax, 0):
		return fmt.Errorf("%w: personal_max must be finite, got %v", ErrInvalidConfig, c.PersonalMax)
	case c.Replicates <= 0:
		return fmt.Errorf("%w: replicates must be > 0, got %d", ErrInvalidConfig, c.Replicates)
	case c.Parallelism <= 0:
		return fmt.Errorf("%w: parallelism must be > 0, got %d", ErrInvalidConfig, c.Parallelism)
	}
	return nil
}

// WithWorkers returns a copy of c staffed with n ID workers.
func (c Config) WithWorkers(n int) Config {
	c.NumWorkers = n
	return c
}

// LoadConfig reads a YAML file on top of DefaultConfig. Unknown keys are
// rejected so typos surface as errors. The result is not validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML into cfg with strict field checking.
// Keys absent from data leave cfg untouched.
func ParseConfig(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		// An empty document is not an error: defaults stand.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}
