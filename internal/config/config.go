package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hapticlab/teleop/internal/session"
)

// Config is the YAML session description accepted by the CLI.
type Config struct {
	Scheme   string  `yaml:"scheme"`
	Dim      int     `yaml:"dim"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	Delay    int     `yaml:"delay"`

	Impedance float64 `yaml:"impedance"`
	Tau       float64 `yaml:"tau"`
	MuMax     float64 `yaml:"mu_max"`

	Deadband float64 `yaml:"deadband"`

	Tracker  TrackerConfig  `yaml:"tracker"`
	Master   DeviceConfig   `yaml:"master"`
	Slave    DeviceConfig   `yaml:"slave"`
	Operator OperatorConfig `yaml:"operator"`
}

type TrackerConfig struct {
	Kp float64 `yaml:"kp"`
	Ki float64 `yaml:"ki"`
	Kd float64 `yaml:"kd"`
}

type DeviceConfig struct {
	Mass      float64 `yaml:"mass"`
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
}

type OperatorConfig struct {
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

// Default mirrors session.DefaultConfig in file form.
func Default() *Config {
	s := session.DefaultConfig()
	return &Config{
		Scheme:    string(s.Scheme),
		Dim:       s.Dim,
		Dt:        s.Dt,
		Duration:  s.Duration,
		Delay:     s.Delay,
		Impedance: s.Impedance,
		Tau:       s.Tau,
		MuMax:     s.MuMax,
		Deadband:  s.Deadband,
		Tracker:   TrackerConfig{Kp: s.KP, Ki: s.KI, Kd: s.KD},
		Master:    DeviceConfig{Mass: s.MasterMass, Damping: s.MasterDamping},
		Slave: DeviceConfig{
			Mass:      s.SlaveMass,
			Stiffness: s.SlaveStiffness,
			Damping:   s.SlaveDamping,
		},
		Operator: OperatorConfig{
			Amplitude: s.OperatorAmplitude,
			Frequency: s.OperatorFrequency,
		},
	}
}

// Load reads a YAML session file, applying defaults for absent fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Session converts the file form to a validated session configuration.
func (c *Config) Session() (session.Config, error) {
	s := session.Config{
		Scheme:            session.Scheme(c.Scheme),
		Dim:               c.Dim,
		Dt:                c.Dt,
		Duration:          c.Duration,
		Delay:             c.Delay,
		Impedance:         c.Impedance,
		Tau:               c.Tau,
		MuMax:             c.MuMax,
		KP:                c.Tracker.Kp,
		KI:                c.Tracker.Ki,
		KD:                c.Tracker.Kd,
		Deadband:          c.Deadband,
		MasterMass:        c.Master.Mass,
		MasterDamping:     c.Master.Damping,
		SlaveMass:         c.Slave.Mass,
		SlaveStiffness:    c.Slave.Stiffness,
		SlaveDamping:      c.Slave.Damping,
		OperatorAmplitude: c.Operator.Amplitude,
		OperatorFrequency: c.Operator.Frequency,
		ValidateState:     true,
	}
	if err := s.Validate(); err != nil {
		return session.Config{}, err
	}
	return s, nil
}
