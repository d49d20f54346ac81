package config

// Config is the full importer configuration.
type Config struct {
	// OutputDir receives the build reports. Empty means the builds
	// directory under the importer home.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// ExcludeList is an optional path to a file of headwords to reject,
	// one per line.
	ExcludeList string `mapstructure:"exclude_list" yaml:"exclude_list"`

	// MinConfidence excludes entries parsed below this confidence.
	// Zero keeps everything.
	MinConfidence float64 `mapstructure:"min_confidence" yaml:"min_confidence"`

	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig controls structured log output.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is text or json.
	Format string `mapstructure:"format" yaml:"format"`
}
