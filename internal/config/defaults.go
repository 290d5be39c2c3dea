package config

const (
	defaultConfigPath     = "~/.config/ffstrip/config.toml"
	defaultFFprobeBinary  = "ffprobe"
	defaultFFmpegBinary   = "ffmpeg"
	defaultProbeCachePath = "~/.cache/ffstrip/probe.db"
	defaultLogLevel       = "info"
)

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Tools: Tools{
			FFprobe: defaultFFprobeBinary,
			FFmpeg:  defaultFFmpegBinary,
		},
		ProbeCache: ProbeCache{
			Enabled: false,
			Path:    defaultProbeCachePath,
		},
		Logging: Logging{
			Format: "",
			Level:  defaultLogLevel,
		},
	}
}
