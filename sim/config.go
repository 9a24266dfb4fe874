package sim

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidDistribution reports an empty outcome table or a negative probability.
	ErrInvalidDistribution = errors.New("invalid distribution")
	// ErrInvalidConfiguration reports a configuration or batch request that cannot be simulated.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// LocationConfig groups the capacity and starting stock of one storage location.
type LocationConfig struct {
	MaxCapacity int `yaml:"max_capacity" json:"max_capacity"` // hard cap, must be >= 0
	StartUnits  int `yaml:"start_units" json:"start_units"`   // stock at day 1, 0..MaxCapacity
}

// Distributions groups the three stochastic inputs of the policy.
type Distributions struct {
	OccupiedRooms   *ProbabilityDistribution `yaml:"occupied_rooms" json:"occupied_rooms"`     // rooms occupied per day
	RoomConsumption *ProbabilityDistribution `yaml:"room_consumption" json:"room_consumption"` // units used per occupied room
	LeadTime        *ProbabilityDistribution `yaml:"lead_time" json:"lead_time"`               // days from order to delivery
}

// Config is the read-only snapshot a batch runs against.
// Re-configuration between batches means building a new Config value.
type Config struct {
	ReviewTime    int            `yaml:"review_time" json:"review_time"` // days between reviews, must be > 0
	FirstFloor    LocationConfig `yaml:"first_floor" json:"first_floor"`
	Basement      LocationConfig `yaml:"basement" json:"basement"`
	Distributions Distributions  `yaml:"distributions" json:"distributions"`
}

// DefaultConfig returns the stock policy the simulator ships with.
func DefaultConfig() Config {
	return Config{
		ReviewTime: 5,
		FirstFloor: LocationConfig{MaxCapacity: 15, StartUnits: 8},
		Basement:   LocationConfig{MaxCapacity: 50, StartUnits: 40},
		Distributions: Distributions{
			OccupiedRooms: MustDistribution(
				Outcome{1, 0.1}, Outcome{2, 0.15}, Outcome{3, 0.35}, Outcome{4, 0.2}, Outcome{5, 0.2},
			),
			RoomConsumption: MustDistribution(Outcome{1, 0.7}, Outcome{2, 0.3}),
			LeadTime:        MustDistribution(Outcome{1, 0.35}, Outcome{2, 0.35}, Outcome{3, 0.3}),
		},
	}
}

// Validate checks capacities, start units, the review interval and all three
// distributions. Every failure wraps ErrInvalidConfiguration; distribution
// faults also wrap ErrInvalidDistribution.
func (c *Config) Validate() error {
	if c.ReviewTime <= 0 {
		return fmt.Errorf("%w: review_time must be positive, got %d", ErrInvalidConfiguration, c.ReviewTime)
	}
	if err := c.FirstFloor.validate("first_floor"); err != nil {
		return err
	}
	if err := c.Basement.validate("basement"); err != nil {
		return err
	}
	dists := []struct {
		name string
		d    *ProbabilityDistribution
	}{
		{"occupied_rooms", c.Distributions.OccupiedRooms},
		{"room_consumption", c.Distributions.RoomConsumption},
		{"lead_time", c.Distributions.LeadTime},
	}
	for _, nd := range dists {
		if nd.d == nil || len(nd.d.outcomes) == 0 {
			return fmt.Errorf("%w: distributions.%s: %w: no outcomes", ErrInvalidConfiguration, nd.name, ErrInvalidDistribution)
		}
		if v := nd.d.MinValue(); v < 0 {
			return fmt.Errorf("%w: distributions.%s: outcome values must be non-negative, got %d", ErrInvalidConfiguration, nd.name, v)
		}
	}
	return nil
}

func (l LocationConfig) validate(prefix string) error {
	if l.MaxCapacity < 0 {
		return fmt.Errorf("%w: %s.max_capacity must be non-negative, got %d", ErrInvalidConfiguration, prefix, l.MaxCapacity)
	}
	if l.StartUnits < 0 {
		return fmt.Errorf("%w: %s.start_units must be non-negative, got %d", ErrInvalidConfiguration, prefix, l.StartUnits)
	}
	if l.StartUnits > l.MaxCapacity {
		return fmt.Errorf("%w: %s.start_units (%d) exceeds max_capacity (%d)", ErrInvalidConfiguration, prefix, l.StartUnits, l.MaxCapacity)
	}
	return nil
}

// LoadConfig reads a YAML configuration file and validates it.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates a YAML configuration document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, ErrInvalidDistribution) {
			return nil, fmt.Errorf("%w: parsing config: %w", ErrInvalidConfiguration, err)
		}
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
