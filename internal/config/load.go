package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LookupFunc reads an environment variable.
type LookupFunc func(key string) (string, bool)

// LoadOptions selects the sources Load reads.
type LoadOptions struct {
	// ConfigFile is an optional YAML file.
	ConfigFile string
	// EnvFile is an optional dotenv file. Its values never override the environment.
	EnvFile string
	// Lookup reads the environment. Nil uses os.LookupEnv.
	Lookup LookupFunc
}

// Load builds a Config from defaults, then the YAML file, then the env file
// and the environment. Callers apply flags on top and call Validate.
func Load(opts LoadOptions) (*Config, error) {
	cfg := New()

	if opts.ConfigFile != "" {
		if err := cfg.loadYAML(opts.ConfigFile); err != nil {
			return nil, err
		}
	}

	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if opts.EnvFile != "" {
		fileEnv, err := godotenv.Read(opts.EnvFile)
		if err != nil {
			return nil, fmt.Errorf("read env file %s: %w", opts.EnvFile, err)
		}
		lookup = withFallback(lookup, fileEnv)
	}

	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: config file %s not found", ErrInvalidConfig, path)
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// withFallback consults lookup first and fileEnv only for unset variables.
func withFallback(lookup LookupFunc, fileEnv map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]
		return v, ok
	}
}

func (c *Config) applyEnv(lookup LookupFunc) error {
	textVars := []struct {
		keys   []string
		target *string
	}{
		{keys: []string{EnvGitHubWorkspace, EnvWorkspace}, target: &c.Workspace},
		{keys: []string{EnvInputTests, EnvTests}, target: &c.Tests},
		{keys: []string{EnvInputFramework, EnvFramework}, target: &c.Framework},
		{keys: []string{EnvInputBase, EnvBase}, target: &c.BaseRef},
	}
	for _, s := range textVars {
		for _, key := range s.keys {
			if v, ok := lookup(key); ok && v != "" {
				*s.target = v
			}
		}
	}

	if v, ok := lookup(EnvFileNames); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvFileNames, v)
		}
		c.FileNames = b
	}
	if v, ok := lookup(EnvGitignore); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, EnvGitignore, v)
		}
		c.Gitignore = b
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvWorkers, v)
		}
		c.Workers = n
	}
	if v, ok := lookup(EnvListingThreshold); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvListingThreshold, v)
		}
		c.ListingThreshold = n
	}
	if v, ok := lookup(EnvMaxFileSize); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvMaxFileSize, v)
		}
		c.MaxFileSize = n
	}

	return nil
}
