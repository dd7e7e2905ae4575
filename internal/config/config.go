package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyDataDir    = "data_dir"
	cfgKeySchemaFile = "schema_file"
	cfgKeyDBFile     = "db_file"

	// DefaultDBFileName is the SQLite database filename inside the data
	// directory when db_file is not set.
	DefaultDBFileName = "mirror.sqlite"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# gqlmirror CLI configuration

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Path to the declared schema file consumed by "gqlmirror init"
# schema_file:

# SQLite database filename inside the data directory
# db_file: mirror.sqlite
`

// Config is the resolved view of config.yaml plus its known keys. Unknown
// keys are preserved in the underlying viper.Viper, available via Raw.
type Config struct {
	DataDir    string
	SchemaFile string
	DBFile     string

	raw *viper.Viper
}

// Raw returns the underlying *viper.Viper, for callers that need a key this
// type does not surface directly.
func (c *Config) Raw() *viper.Viper { return c.raw }

// ErrDataDirEmpty indicates a Config whose DataDir resolved to "" was used
// where a concrete directory is required.
var ErrDataDirEmpty = errors.New("config: data directory must not be empty")

// DBPath returns the absolute path to the mirror's SQLite database file.
func (c *Config) DBPath() (string, error) {
	if c.DataDir == "" {
		return "", ErrDataDirEmpty
	}
	name := c.DBFile
	if name == "" {
		name = DefaultDBFileName
	}
	return filepath.Join(c.DataDir, name), nil
}

// Load reads config.yaml from configDir using viper, creating the directory
// and a default config.yaml on first run. A missing config.yaml is not an
// error. dataDirFlag, if non-empty, takes precedence over the data_dir key.
func Load(configDir, dataDirFlag string) (*Config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("config: ensuring config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("config: writing default config: %w", err)
	}

	v := viper.New()
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config.yaml: %w", err)
		}
	}

	dataDir, err := ResolveDataDir(dataDirFlag, v.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("config: resolving data dir: %w", err)
	}

	return &Config{
		DataDir:    dataDir,
		SchemaFile: v.GetString(cfgKeySchemaFile),
		DBFile:     v.GetString(cfgKeyDBFile),
		raw:        v,
	}, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
