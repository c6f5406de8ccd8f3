package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional joule.yaml project file.
type Config struct {
	// Class names the generated Jasmin class. Defaults to Main.
	Class string `yaml:"class,omitempty"`

	// StackLimit is the .limit stack of every method. Defaults to 100.
	StackLimit int `yaml:"stack_limit,omitempty"`

	// OutDir receives the build outputs, relative to the config file.
	// Defaults to "out".
	OutDir string `yaml:"out_dir,omitempty"`

	// Targets lists what build emits: jasmin, js or both (the default).
	Targets []string `yaml:"targets,omitempty"`

	// Color is auto, always or never.
	Color string `yaml:"color,omitempty"`
}

// DefaultConfig is used when no joule.yaml exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a joule.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses joule.yaml content. The path is only used in error
// messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for joule.yaml (or joule.yml) starting from dir and
// walking up to the filesystem root. It returns "" if there is none.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range []string{"joule.yaml", "joule.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func (c *Config) validate(path string) error {
	if c.Class != "" && !isJavaIdentifier(c.Class) {
		return fmt.Errorf("%s: class %q is not a valid class name", path, c.Class)
	}
	if c.StackLimit < 0 {
		return fmt.Errorf("%s: stack_limit must be positive, got %d", path, c.StackLimit)
	}
	seen := map[string]bool{}
	for i, target := range c.Targets {
		if target != TargetJasmin && target != TargetJS {
			return fmt.Errorf("%s: targets[%d]: unknown target %q (want jasmin or js)", path, i, target)
		}
		if seen[target] {
			return fmt.Errorf("%s: targets[%d]: duplicate target %q", path, i, target)
		}
		seen[target] = true
	}
	switch c.Color {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("%s: color must be auto, always or never, got %q", path, c.Color)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Class == "" {
		c.Class = "Main"
	}
	if c.StackLimit == 0 {
		c.StackLimit = 100
	}
	if c.OutDir == "" {
		c.OutDir = "out"
	}
	if len(c.Targets) == 0 {
		c.Targets = []string{TargetJasmin, TargetJS}
	}
	if c.Color == "" {
		c.Color = "auto"
	}
}

// JasminOptions returns the generator options the config describes.
func (c *Config) JasminOptions() JasminOptions {
	return JasminOptions{ClassName: c.Class, StackLimit: c.StackLimit}
}

func isJavaIdentifier(s string) bool {
	if s == "" || isDigit(s[0]) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) && s[i] != '$' {
			return false
		}
	}
	return true
}
