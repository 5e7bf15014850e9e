// Package config defines program configuration, logging and debug
// reporting. Configuration is a composition of the embedded defaults
// template and an optional user-provided YAML file superimposed on top.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	// ImagesConfig controls how image references are resolved and whether
	// loaded raster images are normalized before entering the document.
	ImagesConfig struct {
		SourceDir   string  `yaml:"source_dir,omitempty" sanitize:"path_clean" validate:"omitempty,dirpath|dir"`
		TargetDir   string  `yaml:"target_dir,omitempty" sanitize:"path_clean" validate:"omitempty,dirpath|dir"`
		Normalize   bool    `yaml:"normalize"`
		ScaleFactor float64 `yaml:"scale_factor" validate:"gte=0.0"`
		JPEGQuality int     `yaml:"jpeg_quality_level" validate:"min=40,max=100"`
	}

	// PageConfig carries page geometry passed through into every built
	// document. The conversion core never interprets these values.
	PageConfig struct {
		Width        float64 `yaml:"width" validate:"gt=0"`
		Height       float64 `yaml:"height" validate:"gt=0"`
		LeftIndent   float64 `yaml:"left_indent" validate:"gte=0"`
		RightIndent  float64 `yaml:"right_indent" validate:"gte=0"`
		TopIndent    float64 `yaml:"top_indent" validate:"gte=0"`
		BottomIndent float64 `yaml:"bottom_indent" validate:"gte=0"`
	}

	DocumentConfig struct {
		OutputNameTemplate    string       `yaml:"output_name_template"`
		FileNameTransliterate bool         `yaml:"file_name_transliterate"`
		Page                  PageConfig   `yaml:"page"`
		Images                ImagesConfig `yaml:"images"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// Only fields we defined are acceptable, so plain yaml.Unmarshal is not
	// enough here.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads configuration from the file at the given path,
// superimposes its values on top of the expanded defaults template and
// validates the result. An empty path yields the defaults.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates the default configuration file from the embedded
// template and returns it as a byte slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump marshals active configuration back to YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
