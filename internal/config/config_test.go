package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // ignore any real ~/.memories/config.yaml
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FilenameFormat != NamingReadable {
		t.Errorf("expected readable format, got %q", cfg.FilenameFormat)
	}
	if !cfg.Frontmatter.Workout || !cfg.Frontmatter.Activity {
		t.Error("expected all frontmatter categories enabled by default")
	}
	if len(cfg.DefaultTags) == 0 || len(cfg.ManualTags) == 0 {
		t.Error("expected non-empty default tag sets")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	contents := `
filename_format: unix
default_tags:
  - diary
frontmatter:
  workout: false
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FilenameFormat != NamingUnix {
		t.Errorf("expected unix format, got %q", cfg.FilenameFormat)
	}
	if len(cfg.DefaultTags) != 1 || cfg.DefaultTags[0] != "diary" {
		t.Errorf("expected [diary], got %v", cfg.DefaultTags)
	}
	if cfg.Frontmatter.Workout {
		t.Error("expected workout frontmatter disabled")
	}
	if !cfg.Frontmatter.Song {
		t.Error("expected untouched categories to keep defaults")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("MEMORIES_FILENAME_FORMAT", "compact")
	t.Setenv("MEMORIES_FRONTMATTER_PHOTO", "false")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FilenameFormat != NamingCompact {
		t.Errorf("expected compact from env, got %q", cfg.FilenameFormat)
	}
	if cfg.Frontmatter.Photo {
		t.Error("expected photo frontmatter disabled from env")
	}
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := Default()
	cfg.FilenameFormat = "fancy"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("expected oneof message, got %q", err.Error())
	}
}
