// Package config provides layered configuration for the babel CLI.
//
// Precedence (highest to lowest): flags > BABEL_* env vars > babel.yaml >
// defaults.
package config

// Defaults.
const (
	DefaultProjectFile   = "babel.json"
	DefaultMaxIterations = 1000
	DefaultFormat        = "text"
	EnvPrefix            = "BABEL_"
)

// ConfigFileNames are searched, in order, in the working directory when no
// explicit config file is given.
var ConfigFileNames = []string{"babel.yaml", "babel.yml"}

// Config holds all CLI configuration options.
type Config struct {
	// Project is the project file; .yaml/.yml selects YAML, anything else JSON.
	Project string `koanf:"project"`

	// DB is the SQLite derivation log. Empty disables logging.
	DB string `koanf:"db"`

	// MaxIterations caps fixpoint application of a single rule.
	MaxIterations int `koanf:"max_iterations"`

	Format  string `koanf:"format"`
	Verbose bool   `koanf:"verbose"`

	// ConfigFile is the file that was loaded, if any. Not read from config.
	ConfigFile string `koanf:"-"`
}
