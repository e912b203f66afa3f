// Package config provides the export configuration and its loader.
package config

// NamingFormat selects how export filenames are derived from the entry date.
type NamingFormat string

const (
	// NamingCompact is yyyyMMddHHmm, e.g. 202501010800.md.
	NamingCompact NamingFormat = "compact"
	// NamingReadable is yyyy-MM-dd HH:mm, e.g. "2025-01-01 08:00.md".
	NamingReadable NamingFormat = "readable"
	// NamingDateOnly is yyyy-MM-dd, e.g. 2025-01-01.md.
	NamingDateOnly NamingFormat = "date"
	// NamingUnix is the Unix timestamp in seconds, e.g. 1735718400.md.
	NamingUnix NamingFormat = "unix"
	// NamingDescriptive is "Memory - yyyy-MM-dd HH:mm.md".
	NamingDescriptive NamingFormat = "descriptive"
)

// FrontmatterConfig gates which fact categories appear in the YAML
// frontmatter. The narrative body always includes a category when present.
type FrontmatterConfig struct {
	Workout     bool `koanf:"workout"`
	Song        bool `koanf:"song"`
	Podcast     bool `koanf:"podcast"`
	Photo       bool `koanf:"photo"`
	Contact     bool `koanf:"contact"`
	Reflection  bool `koanf:"reflection"`
	StateOfMind bool `koanf:"state_of_mind"`
	Activity    bool `koanf:"activity"`
}

// Config is the full export configuration. It is a plain value passed into
// the composer; nothing reads it through package-level state.
type Config struct {
	// FilenameFormat selects the export filename scheme.
	FilenameFormat NamingFormat `koanf:"filename_format" validate:"oneof=compact readable date unix descriptive"`

	// DefaultTags seed the tag set of suggestion-derived exports.
	DefaultTags []string `koanf:"default_tags"`

	// ManualTags are the tags applied to manual entries.
	ManualTags []string `koanf:"manual_tags"`

	// Frontmatter holds the per-category inclusion flags.
	Frontmatter FrontmatterConfig `koanf:"frontmatter"`
}

// Default returns the configuration used when no file or env overrides exist.
// Every frontmatter category is included by default.
func Default() Config {
	return Config{
		FilenameFormat: NamingReadable,
		DefaultTags:    []string{"memory", "journal"},
		ManualTags:     []string{"journal", "manual"},
		Frontmatter: FrontmatterConfig{
			Workout:     true,
			Song:        true,
			Podcast:     true,
			Photo:       true,
			Contact:     true,
			Reflection:  true,
			StateOfMind: true,
			Activity:    true,
		},
	}
}
