package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rime.yaml")
	err := os.WriteFile(path, []byte("multiline: true\ntimeout: 2s\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}
	flags := rootCmd.PersistentFlags()
	if err := flags.Set("config", path); err != nil {
		t.Fatal(err)
	}
	defer flags.Set("config", "")
	t.Setenv("RIME_IGNORE_CASE", "true")
	t.Setenv("RIME_TIMEOUT", "5s")

	err = loadConfig(rootCmd, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !config.GetBool(keyMultiline) {
		t.Fatal("multiline must be read from the config file")
	}
	if !config.GetBool(keyIgnoreCase) {
		t.Fatal("ignore-case must be read from the environment")
	}
	if d := config.GetDuration(keyTimeout); d != 5*time.Second {
		t.Fatalf("the environment must take precedence over the config file: want: %v, got: %v", 5*time.Second, d)
	}
	if opts := compileOptions(); len(opts) != 3 {
		t.Fatalf("unexpected option count: want: 3, got: %v", len(opts))
	}
}

func TestExecute_LoadsConfigBeforeSubcommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")
	rootCmd.SetArgs([]string{"--config", path, "check", "a"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.PersistentFlags().Set("config", "")
	}()

	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("a missing config file must be reported")
	}
	if !strings.Contains(err.Error(), "Cannot read the config file") {
		t.Fatalf("unexpected error: %v", err)
	}
}
