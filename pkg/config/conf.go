package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/repwatch/pkg/ingest"
	"github.com/mchmarny/repwatch/pkg/score"
)

const (
	ConfigFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600
)

// Config holds the scoring policy that is not fixed by the model: source
// weights, which columns count as engagement and how dates are read.
type Config struct {
	SourceWeights       map[string]float64 `yaml:"sourceWeights" json:"source_weights"`
	DefaultSourceWeight float64            `yaml:"defaultSourceWeight" json:"default_source_weight"`
	EngagementColumns   []string           `yaml:"engagementColumns" json:"engagement_columns"`
	DayFirst            bool               `yaml:"dayFirst" json:"day_first"`
}

// Default returns the built-in configuration.
func Default() *Config {
	w := score.DefaultWeights()
	o := ingest.DefaultOptions()
	return &Config{
		SourceWeights:       w.Sources,
		DefaultSourceWeight: w.Default,
		EngagementColumns:   o.EngagementColumns,
		DayFirst:            o.DayFirst,
	}
}

// IngestOptions returns the table reading options.
func (c *Config) IngestOptions() ingest.Options {
	return ingest.Options{
		EngagementColumns: c.EngagementColumns,
		DayFirst:          c.DayFirst,
	}
}

// Weights returns the source weight table with lowercase keys.
func (c *Config) Weights() score.Weights {
	w := score.Weights{
		Sources: make(map[string]float64, len(c.SourceWeights)),
		Default: c.DefaultSourceWeight,
	}
	for k, v := range c.SourceWeights {
		w.Sources[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return w
}

// Validate checks that every weight lies in (0,1].
func (c *Config) Validate() error {
	if c.DefaultSourceWeight <= 0 || c.DefaultSourceWeight > 1 {
		return errors.Errorf("default source weight must be in (0,1], got %v", c.DefaultSourceWeight)
	}
	for k, v := range c.SourceWeights {
		if v <= 0 || v > 1 {
			return errors.Errorf("source weight for %q must be in (0,1], got %v", k, v)
		}
	}
	return nil
}

// Save writes the config to path, creating the parent directory if needed.
func Save(path string, c *Config) error {
	if path == "" {
		return errors.New("config path required")
	}
	if c == nil {
		return errors.New("config required")
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return errors.Wrapf(err, "failed to create dir for: %s", path)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", path)
	}
	return nil
}

// Load reads the config at path. A missing file yields the defaults. Fields
// left out of the file keep their default values.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Debug().Str("path", path).Msg("config file not found, using defaults")
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config file: %s", path)
	}

	return c, nil
}

// ReadOrCreate reads the config at path, writing the defaults first when
// the file does not exist.
func ReadOrCreate(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path required")
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(path, Default()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	return Load(path)
}

// GetOrCreateHomeDir returns the app directory in the user home.
// The create flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get user home dir")
	}
	log.Debug().Msgf("home dir: %s", home)

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		log.Debug().Msgf("creating dir: %s", dir)
		err := os.Mkdir(dir, dirMode)
		if err != nil {
			return "", false, errors.Wrapf(err, "failed to create dir: %s", dir)
		}
		created = true
	}
	return dir, created, nil
}
