package log

// Config controls the process-wide logger.
type Config struct {
	// Name is attached to every entry as the "logger" field.
	Name string `conf:"name" yaml:"name" json:"name"`
	// Level is one of debug, info, warn, error.
	Level string `conf:"level" yaml:"level" json:"level"`
	// Format is one of json, console.
	Format string `conf:"format" yaml:"format" json:"format"`
}
