// internal/platform/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"ssdeepx/internal/testutil"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	testutil.AssertEqual(t, cfg.Tool.Path, "ssdeep", "tool path")
	testutil.AssertEqual(t, cfg.Tool.TimeoutS, 0, "no timeout by default")
	testutil.AssertEqual(t, cfg.Output.Dir, "ssdeepx_out", "output dir")
	testutil.AssertEqual(t, cfg.Queue.TaskList, "ssdeepx:tasks", "task list")
	testutil.AssertEqual(t, cfg.Log.Level, "info", "log level")
}

func TestLoad_FlagsOverrideDefaults(t *testing.T) {
	cfg, files, err := Load(nil, []string{
		"--tool", "/opt/ssdeep/bin/ssdeep",
		"--out", "/tmp/artifacts",
		"--tool-timeout", "30",
		"/data/a.txt", "/data/b.txt",
	})

	testutil.AssertNoError(t, err, "load should succeed")
	testutil.AssertEqual(t, cfg.Tool.Path, "/opt/ssdeep/bin/ssdeep", "tool path")
	testutil.AssertEqual(t, cfg.Output.Dir, "/tmp/artifacts", "output dir")
	testutil.AssertEqual(t, cfg.ToolTimeout(), 30*time.Second, "timeout duration")
	testutil.AssertEqual(t, len(files), 2, "positional args")
	testutil.AssertEqual(t, files[0], "/data/a.txt", "first file")
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("SSDEEPX_OUTPUT_DIR", "/env/out")
	t.Setenv("SSDEEPX_QUEUE_LIST", "env:tasks")
	t.Setenv("SSDEEPX_LOG_LEVEL", "debug")

	cfg, _, err := Load(nil, nil)

	testutil.AssertNoError(t, err, "load should succeed")
	testutil.AssertEqual(t, cfg.Output.Dir, "/env/out", "env output dir")
	testutil.AssertEqual(t, cfg.Queue.TaskList, "env:tasks", "env task list")
	testutil.AssertEqual(t, cfg.Log.Level, "debug", "env log level")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SSDEEPX_OUTPUT_DIR", "/env/out")

	cfg, _, err := Load(nil, []string{"--out", "/flag/out"})

	testutil.AssertNoError(t, err, "load should succeed")
	testutil.AssertEqual(t, cfg.Output.Dir, "/flag/out", "flags win over env")
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssdeepx.yaml")
	content := []byte(`
tool:
  path: /yaml/ssdeep
  timeout_seconds: 12
output:
  dir: /yaml/out
queue:
  url: redis://broker:6379/1
  task_list: yaml:tasks
log:
  level: warn
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, _, err := Load(nil, []string{"--config", path})

	testutil.AssertNoError(t, err, "load should succeed")
	testutil.AssertEqual(t, cfg.Tool.Path, "/yaml/ssdeep", "yaml tool path")
	testutil.AssertEqual(t, cfg.Tool.TimeoutS, 12, "yaml timeout")
	testutil.AssertEqual(t, cfg.Output.Dir, "/yaml/out", "yaml output dir")
	testutil.AssertEqual(t, cfg.Queue.URL, "redis://broker:6379/1", "yaml queue url")
	testutil.AssertEqual(t, cfg.Queue.TaskList, "yaml:tasks", "yaml task list")
	testutil.AssertEqual(t, cfg.Log.Level, "warn", "yaml log level")
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ssdeepx.yaml")
	if err := os.WriteFile(path, []byte("output:\n  dir: /yaml/out\n"), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("SSDEEPX_OUTPUT_DIR", "/env/out")

	cfg, _, err := Load(nil, []string{"--config=" + path})

	testutil.AssertNoError(t, err, "load should succeed")
	testutil.AssertEqual(t, cfg.Output.Dir, "/env/out", "env wins over file")
}

func TestLoad_MissingConfigFile(t *testing.T) {
	_, _, err := Load(nil, []string{"--config", "/no/such/file.yaml"})

	testutil.AssertError(t, err, "missing file is an error")
}

func TestNormalize_ClampsValues(t *testing.T) {
	cfg, _, err := Load(nil, []string{"--tool-timeout", "-5", "--queue-block", "0"})

	testutil.AssertNoError(t, err, "load should succeed")
	testutil.AssertEqual(t, cfg.Tool.TimeoutS, 0, "negative timeout clamped")
	testutil.AssertEqual(t, cfg.QueueBlock(), 5*time.Second, "block interval clamped")
}
