package cmdutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/flarebyte/papyrus/internal/config"
)

func newResolvedCmd(t *testing.T, c *Common, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "tool", RunE: func(*cobra.Command, []string) error { return nil }}
	c.Bind(cmd)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	return cmd
}

func TestCommonResolve_FlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PAPYRUS_OUT_DIR", filepath.Join(dir, "from-env"))
	t.Setenv("PAPYRUS_LOG_LEVEL", "error")

	var c Common
	cmd := newResolvedCmd(t, &c, "--out-dir", "from-flag")
	if _, err := c.Resolve(cmd, "Files"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.OutDir != "from-flag" {
		t.Fatalf("unexpected out dir: %s", c.OutDir)
	}
	if c.LogLevel != "error" {
		t.Fatalf("unexpected log level: %s", c.LogLevel)
	}
}

func TestCommonResolve_DefaultsUnderWorkingDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PAPYRUS_OUT_DIR", "")

	var c Common
	cmd := newResolvedCmd(t, &c)
	if _, err := c.Resolve(cmd, "Codes"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	wd, _ := os.Getwd()
	if c.OutDir != filepath.Join(wd, "Codes") {
		t.Fatalf("unexpected out dir: %s", c.OutDir)
	}
	if c.LogLevel != "warn" || c.LogFormat != "text" {
		t.Fatalf("unexpected logging defaults: %s %s", c.LogLevel, c.LogFormat)
	}
}

func TestCommonResolve_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("PAPYRUS_OUT_DIR", "")
	_ = os.Unsetenv("PAPYRUS_OUT_DIR")
	if err := os.WriteFile(filepath.Join(dir, "custom.env"), []byte("PAPYRUS_OUT_DIR=dotenv-dir\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var c Common
	cmd := newResolvedCmd(t, &c, "--env-file", "custom.env")
	if _, err := c.Resolve(cmd, "Files"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if c.OutDir != "dotenv-dir" {
		t.Fatalf("unexpected out dir: %s", c.OutDir)
	}
}

func TestOpenStorage_Disabled(t *testing.T) {
	st, err := OpenStorage(t.Context(), config.StorageConfig{})
	if err != nil || st != nil {
		t.Fatalf("expected no storage, got %v, %v", st, err)
	}
}
