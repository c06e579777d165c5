package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orbitgen/pkg/cache"
	"github.com/matzehuels/orbitgen/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
partitioner = "morgan"
workers     = 4
max_results = 1000
timeout     = "30s"

[cache]
backend    = "redis"
redis_addr = "localhost:6379"
ttl        = "24h"
`)
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		Partitioner: "morgan",
		Workers:     4,
		MaxResults:  1000,
		Timeout:     30 * time.Second,
		Cache: cache.Config{
			Backend:   cache.BackendRedis,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	got, err := LoadConfig(writeConfig(t, "workers = 8\n"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	want.Workers = 8
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	got, err := LoadConfig("")
	if err != nil {
		t.Fatalf("missing default config should not fail: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key": "partitoner = \"morgan\"\n",
		"bad syntax":  "workers = \n",
		"bad type":    "workers = \"many\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, body)); err == nil {
				t.Error("expected error")
			}
		})
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

func TestConfigApplyTo(t *testing.T) {
	cfg := Config{Partitioner: "morgan", Workers: 4, MaxResults: 10, Timeout: time.Second}

	newCmd := func() *cobra.Command {
		cmd := &cobra.Command{}
		cmd.Flags().String("partitioner", "", "")
		cmd.Flags().Int("workers", 0, "")
		cmd.Flags().Int("max", 0, "")
		cmd.Flags().Duration("timeout", 0, "")
		return cmd
	}

	cmd := newCmd()
	var opts pipeline.Options
	cfg.applyTo(cmd, &opts)
	want := pipeline.Options{Partitioner: "morgan", Workers: 4, MaxResults: 10, Timeout: time.Second}
	if diff := cmp.Diff(want, opts, cmp.AllowUnexported(pipeline.Options{})); diff != "" {
		t.Errorf("unset flags (-want +got):\n%s", diff)
	}

	cmd = newCmd()
	if err := cmd.Flags().Set("workers", "2"); err != nil {
		t.Fatal(err)
	}
	opts = pipeline.Options{Workers: 2}
	cfg.applyTo(cmd, &opts)
	if opts.Workers != 2 {
		t.Errorf("Workers = %d, want the flag value 2", opts.Workers)
	}
}

func TestSampleConfigLoads(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("sample config: %v", err)
	}
	if cfg.Partitioner != "morgan" || cfg.Timeout != 5*time.Minute {
		t.Errorf("sample config = %+v", cfg)
	}
}
