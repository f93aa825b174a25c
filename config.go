package tmplfmt

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/fredrikaverpil/tmplfmt/tools/htmlprettify"
)

// ConfigFileName is the optional configuration file read from the project root.
const ConfigFileName = ".tmplfmt.yaml"

// ErrConfigParse is returned when the configuration file cannot be decoded.
var ErrConfigParse = errors.New("failed to parse config file")

// ErrUnknownFormatter is returned when the configured formatter is not supported.
var ErrUnknownFormatter = errors.New("unknown formatter")

// Formatters selectable in TemplatesConfig.Formatter.
const (
	// FormatterJSBeautify runs html-beautify from js-beautify, installed via bun.
	FormatterJSBeautify = "js-beautify"
	// FormatterBuiltin uses the in-process htmlprettify printer. It needs no
	// network access or JavaScript runtime.
	FormatterBuiltin = "builtin"
)

// Config defines the configuration for a project using tmplfmt.
type Config struct {
	// Templates configures the templates task.
	//
	// Example:
	//
	//	templates:
	//	  dir: templates
	//	  pattern: "*.html"
	//	  formatter: js-beautify
	//	  indent_char: " "
	//	  indent_size: 4
	Templates TemplatesConfig `yaml:"templates"`
}

// TemplatesConfig selects the markup files to rewrite and how to indent them.
type TemplatesConfig struct {
	// Dir is the directory holding the templates, relative to the project root.
	// Default: "templates"
	Dir string `yaml:"dir"`

	// Pattern is the glob matched against paths inside Dir.
	// Default: "*.html"
	Pattern string `yaml:"pattern"`

	// Formatter selects the formatter: "js-beautify" or "builtin".
	// Default: "js-beautify"
	Formatter string `yaml:"formatter"`

	// IndentChar is the indentation character, a space or a tab.
	// Default: " "
	IndentChar string `yaml:"indent_char"`

	// IndentSize is the number of IndentChar per nesting level.
	// Nil means the default of 4; zero is a valid, explicit choice.
	IndentSize *int `yaml:"indent_size"`
}

// Options returns the formatter options for the templates.
// Call on a config returned by WithDefaults.
func (c TemplatesConfig) Options() htmlprettify.Options {
	opts := htmlprettify.DefaultOptions()
	if c.IndentChar != "" {
		opts.IndentChar = c.IndentChar
	}
	if c.IndentSize != nil {
		opts.IndentSize = *c.IndentSize
	}
	return opts
}

// WithDefaults returns a copy of the config with default values applied.
func (c Config) WithDefaults() Config {
	defaults := htmlprettify.DefaultOptions()
	t := c.Templates
	if t.Dir == "" {
		t.Dir = "templates"
	}
	if t.Pattern == "" {
		t.Pattern = "*.html"
	}
	if t.Formatter == "" {
		t.Formatter = FormatterJSBeautify
	}
	if t.IndentChar == "" {
		t.IndentChar = defaults.IndentChar
	}
	if t.IndentSize == nil {
		size := defaults.IndentSize
		t.IndentSize = &size
	}
	c.Templates = t
	return c
}

// Validate reports whether the config can be used to run tasks.
func (c Config) Validate() error {
	switch c.Templates.Formatter {
	case "", FormatterJSBeautify, FormatterBuiltin:
	default:
		return fmt.Errorf("templates: %w: %q", ErrUnknownFormatter, c.Templates.Formatter)
	}
	if err := c.Templates.Options().Validate(); err != nil {
		return fmt.Errorf("templates: %w", err)
	}
	return nil
}

// LoadConfig reads the config file at path and applies defaults.
// A missing file yields the default config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is the project config file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}.WithDefaults(), nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if len(data) > 0 {
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
		}
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
