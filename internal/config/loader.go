package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix for environment variable overrides,
	// e.g. MEMORIES_FILENAME_FORMAT=unix.
	EnvPrefix = "MEMORIES_"
	// Delimiter is the key delimiter for nested config.
	Delimiter = "."
)

var validate = validator.New()

// Load builds the configuration with the following priority, lowest first:
// built-in defaults, config file, environment variables. When path is empty
// the default location (~/.memories/config.yaml) is tried and silently
// skipped if absent; an explicit path must exist.
func Load(path string) (Config, error) {
	k := koanf.New(Delimiter)

	// Defaults go in as a nested map so a file or env var overriding one
	// frontmatter flag leaves the others at their defaults.
	def := Default()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"filename_format": string(def.FilenameFormat),
		"default_tags":    def.DefaultTags,
		"manual_tags":     def.ManualTags,
		"frontmatter": map[string]interface{}{
			"workout":       def.Frontmatter.Workout,
			"song":          def.Frontmatter.Song,
			"podcast":       def.Frontmatter.Podcast,
			"photo":         def.Frontmatter.Photo,
			"contact":       def.Frontmatter.Contact,
			"reflection":    def.Frontmatter.Reflection,
			"state_of_mind": def.Frontmatter.StateOfMind,
			"activity":      def.Frontmatter.Activity,
		},
	}, Delimiter), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file not found: %s", path)
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file: %w", err)
		}
	} else if p := defaultPath(); p != "" {
		if _, err := os.Stat(p); err == nil {
			if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, Delimiter, envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// envKey maps MEMORIES_FILENAME_FORMAT -> filename_format and
// MEMORIES_FRONTMATTER_WORKOUT -> frontmatter.workout.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "frontmatter_"); ok {
		return "frontmatter" + Delimiter + rest
	}
	return key
}

func defaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".memories", "config.yaml")
}

// Validate checks field constraints and returns a readable error listing
// every violation.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	var sb strings.Builder
	sb.WriteString("invalid configuration:")
	for _, fe := range verrs {
		sb.WriteString(fmt.Sprintf("\n  - %s: %s (got %v)", fe.Namespace(), describe(fe), fe.Value()))
	}
	return errors.New(sb.String())
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
