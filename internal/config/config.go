// Package config handles pond configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Water    WaterConfig    `yaml:"water"`
	Scene    SceneConfig    `yaml:"scene"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	ShowFPS    bool `yaml:"show_fps"`
}

// WaterConfig holds the simulation parameters. Grid dimensions and scale
// are fixed at startup; the height field is never resized.
type WaterConfig struct {
	GridWidth     int     `yaml:"grid_width"`
	GridHeight    int     `yaml:"grid_height"`
	Scale         float32 `yaml:"scale"`    // screen pixels per cell
	Damping       float32 `yaml:"damping"`  // per-step energy retention
	Depth         float32 `yaml:"depth"`    // refraction depth constant
	StepMS        int     `yaml:"step_ms"`  // fixed simulation step
	RainPerSecond float32 `yaml:"rain_per_second"`
	DropRadius    int     `yaml:"drop_radius"`
	DropStrength  float32 `yaml:"drop_strength"`
}

// SceneConfig holds background settings.
type SceneConfig struct {
	Background string `yaml:"background"` // image path; empty uses a generated gradient
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ShowFPS:    false,
		},
		Water: WaterConfig{
			GridWidth:     320,
			GridHeight:    180,
			Scale:         4,
			Damping:       0.995,
			Depth:         0.1,
			StepMS:        33,
			RainPerSecond: 2,
			DropRadius:    4,
			DropStrength:  1.5,
		},
		Scene: SceneConfig{
			Background: "",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
