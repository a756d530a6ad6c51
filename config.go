package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no
// -config flag is given.
const DefaultConfigFile = "icss.yaml"

// Config is the project file read by `icss build`.
type Config struct {
	Path   string `yaml:"-"`
	Out    string `yaml:"out"`    // output directory; "" writes next to the source
	Indent string `yaml:"indent"` // declaration indent
	Banner string `yaml:"banner"` // comment placed before the first rule
}

// DefaultConfig is used when no project file exists.
func DefaultConfig() *Config {
	return &Config{Indent: DefaultIndent}
}

// LoadConfig reads a project file. A missing file yields DefaultConfig;
// unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := decodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

func decodeConfig(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if cfg.Indent == "" {
		cfg.Indent = DefaultIndent
	}
	return cfg, nil
}

// Printer returns a printer configured from cfg.
func (cfg *Config) Printer() *Printer {
	return &Printer{Indent: cfg.Indent, Banner: cfg.Banner}
}

// OutputPath returns where the CSS for source is written.
func (cfg *Config) OutputPath(source string) string {
	base := filepath.Base(source)
	name := base[:len(base)-len(filepath.Ext(base))] + ".css"
	if cfg.Out == "" {
		return filepath.Join(filepath.Dir(source), name)
	}
	dir := cfg.Out
	if cfg.Path != "" && !filepath.IsAbs(dir) {
		dir = filepath.Join(filepath.Dir(cfg.Path), dir)
	}
	return filepath.Join(dir, name)
}
