package config

var Presets = map[string]map[string]*Config{
	"transmission": {
		"unit": {
			Problem:  "transmission",
			Bindings: map[string]float64{"k": 1.0, "c": 1.0},
			Sweep:    SweepConfig{Param: "k", From: 0.0, To: 2.0, Points: 81},
		},
		"stiff": {
			Problem:  "transmission",
			Bindings: map[string]float64{"k": 10.0, "c": 1.0},
			Sweep:    SweepConfig{Param: "k", From: 0.0, To: 20.0, Points: 101},
		},
		"wide": {
			Problem:  "transmission",
			Bindings: map[string]float64{"c": 1.0},
			Sweep:    SweepConfig{Param: "k", From: -5.0, To: 5.0, Points: 201},
		},
	},
	"dirichlet": {
		"unit": {
			Problem:  "dirichlet",
			Bindings: map[string]float64{"eta": 1.0},
			Sweep:    SweepConfig{Param: "eta", From: 0.0, To: 2.0, Points: 81},
		},
		"coupled": {
			Problem:  "dirichlet",
			Bindings: map[string]float64{"eta": 5.0},
			Sweep:    SweepConfig{Param: "eta", From: 0.0, To: 10.0, Points: 101},
		},
	},
}

func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	return names
}
