package config

import "sort"

var Presets = map[string]*Config{
	"single":  {Stages: 1, Voltage: 1.0, Steps: 20},
	"classic": {Stages: 4, Voltage: 1.0, Steps: 300},
	"tall":    {Stages: 10, Voltage: 1.0, Steps: 3000},
	"mains":   {Stages: 3, Voltage: 325.0, Steps: 200},
	"x-ray":   {Stages: 8, Voltage: 5000.0, Steps: 1500},
}

// GetPreset returns a copy of the named preset layered over the defaults, or
// nil when it does not exist.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Stages = p.Stages
	cfg.Voltage = p.Voltage
	cfg.Steps = p.Steps
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
