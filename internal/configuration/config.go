package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/RobsonDevCode/depcheckdocx/internal/constants/reportFormats"
	"github.com/RobsonDevCode/depcheckdocx/internal/constants/rowPolicies"
	"github.com/RobsonDevCode/depcheckdocx/internal/logging"
	"gopkg.in/yaml.v3"
)

const FilePath = "configuration/configuration.yaml"

const (
	DefaultInputDirectory  = "./owasp"
	DefaultOutputDirectory = "output"
)

type Config struct {
	InputDirectory   string   `yaml:"input_directory"`
	OutputDirectory  string   `yaml:"output_directory"`
	ReportExtensions []string `yaml:"report_extensions"`
	OutputExtension  string   `yaml:"output_extension"`
	Workers          int      `yaml:"workers"`
	RowPolicy        string   `yaml:"row_policy"`
	MaxWriteFailures int      `yaml:"max_write_failures"`
	LogLevel         string   `yaml:"log_level"`
}

func Default() Config {
	return Config{
		InputDirectory:   DefaultInputDirectory,
		OutputDirectory:  DefaultOutputDirectory,
		ReportExtensions: []string{reportFormats.Csv},
		OutputExtension:  reportFormats.Docx,
		Workers:          1,
		RowPolicy:        rowPolicies.FailReport,
		MaxWriteFailures: 1,
		LogLevel:         "info",
	}
}

// Load reads the YAML file at path on top of Default. A missing file is not an error.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		config.Normalize()
		return &config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", ErrInvalidConfig, path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: error unmarshalling %s: %w", ErrInvalidConfig, path, err)
	}

	config.Normalize()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Normalize lower-cases extensions and makes sure they carry a leading dot.
func (c *Config) Normalize() {
	extensions := make([]string, 0, len(c.ReportExtensions))
	for _, ext := range c.ReportExtensions {
		ext = normalizeExtension(ext)
		if ext != "" && !slices.Contains(extensions, ext) {
			extensions = append(extensions, ext)
		}
	}
	c.ReportExtensions = extensions
	c.OutputExtension = normalizeExtension(c.OutputExtension)
	c.RowPolicy = strings.ToLower(strings.TrimSpace(c.RowPolicy))
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.InputDirectory) == "" {
		return fmt.Errorf("%w: input_directory", ErrMissingRequired)
	}

	if strings.TrimSpace(c.OutputDirectory) == "" {
		return fmt.Errorf("%w: output_directory", ErrMissingRequired)
	}

	if len(c.ReportExtensions) == 0 {
		return fmt.Errorf("%w: report_extensions", ErrMissingRequired)
	}

	for _, ext := range c.ReportExtensions {
		if !slices.Contains(reportFormats.SupportedInputs, ext) {
			return fmt.Errorf("%w: unsupported report extension %q", ErrInvalidConfig, ext)
		}
	}

	if c.OutputExtension != reportFormats.Docx {
		return fmt.Errorf("%w: unsupported output extension %q", ErrInvalidConfig, c.OutputExtension)
	}

	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, c.Workers)
	}

	if !slices.Contains(rowPolicies.Options, c.RowPolicy) {
		return fmt.Errorf("%w: row_policy must be one of %s", ErrInvalidConfig, strings.Join(rowPolicies.Options, ", "))
	}

	if c.MaxWriteFailures < 1 {
		return fmt.Errorf("%w: max_write_failures must be at least 1", ErrInvalidConfig)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// WriteDefault writes the default configuration to path, refusing to overwrite.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating directory for %s, %w", path, err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("error marshalling configuration, %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing file at %s, %w", path, err)
	}

	return nil
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
