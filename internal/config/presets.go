package config

// Presets are named scenario starting points tuned against the default
// device parameters.
var presets = map[string]func(*Config){
	"soft-contact": func(c *Config) {
		c.Slave.Stiffness = 200.0
		c.Slave.Damping = 5.0
		c.Operator.Amplitude = 4.0
	},
	"stiff-wall": func(c *Config) {
		c.Slave.Stiffness = 2000.0
		c.Slave.Damping = 20.0
		c.Tracker.Kp = 300.0
		c.Operator.Amplitude = 8.0
	},
	"long-delay": func(c *Config) {
		c.Delay = 100
		c.Scheme = "tdpa"
		c.Duration = 10.0
	},
	"compressed": func(c *Config) {
		c.Deadband = 0.1
	},
}

// Preset returns the named preset applied on top of the defaults, or nil
// when the name is unknown.
func Preset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := Default()
	apply(cfg)
	return cfg
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
