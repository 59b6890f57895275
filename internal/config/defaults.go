package config

// NewDefaultConfig creates a new Config with default values
func NewDefaultConfig() *Config {
	return &Config{
		Core: Core{
			Verbose: false,
			Protected: []string{
				"/",
				"/home",
				"/usr",
				"/etc",
				"/var",
				"/tmp",
				"/boot",
			},
			Logging: LoggingConfig{
				Enabled: true,
				Level:   "debug",
				Rotation: RotationConfig{
					MaxSize:  "10MB",
					MaxFiles: 3,
				},
			},
		},
		History: History{
			Include: IncludeConfig{
				Period: 365,
			},
			Exclude: ExcludeConfig{
				Files: []string{
					".DS_Store",
				},
				Patterns: []string{},
				Globs:    []string{},
				Size: SizeConfig{
					Min: "0KB",
					Max: "10GB",
				},
			},
		},
	}
}
