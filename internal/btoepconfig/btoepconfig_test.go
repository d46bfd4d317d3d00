package btoepconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tniessen/btoep/internal/btoepconfig"
)

func Test_Load_MissingExplicitPath_ReturnsError(t *testing.T) {
	t.Parallel()

	cfg, err := btoepconfig.Load(filepath.Join(t.TempDir(), "does-not-exist.jwcc"))
	if err == nil {
		t.Fatal("expected an explicit missing path to error")
	}

	_ = cfg
}

func Test_Load_ExplicitFile_OverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.jwcc")

	content := `{
		// keep overwrites off by default for this team
		"on_conflict": "keep",
	}`

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := btoepconfig.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.OnConflict != "keep" {
		t.Fatalf("OnConflict = %q, want keep", cfg.OnConflict)
	}

	if cfg.RangeFormat != "exclusive" {
		t.Fatalf("RangeFormat = %q, want exclusive (untouched default)", cfg.RangeFormat)
	}
}

func Test_Load_MissingDefaultSearchPath_IsNotAnError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := btoepconfig.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg != btoepconfig.Default() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}
