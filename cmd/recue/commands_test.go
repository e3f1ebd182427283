package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld\n"

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()
	base := t.TempDir()
	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[general]
default_format = "srt"

[history]
enabled = true
path = %q

[logging]
format = "json"
level = "error"
`, filepath.Join(base, "history.db"))
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write test config: %v", err)
	}
	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func runCLI(t *testing.T, env *cliTestEnv, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return out.String() + errOut.String(), err
}

func writeFixture(t *testing.T, env *cliTestEnv, name, content string) string {
	t.Helper()
	path := filepath.Join(env.baseDir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestConvertCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeFixture(t, env, "sample.srt", testSRT)
	output := filepath.Join(env.baseDir, "sample.vtt")

	out, err := runCLI(t, env, "convert", input, output)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	requireContains(t, out, "Wrote 2 cues")

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "WEBVTT") {
		t.Errorf("expected WEBVTT output, got %q", string(data)[:min(len(data), 20)])
	}
}

func TestShiftCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeFixture(t, env, "sample.srt", testSRT)

	if _, err := runCLI(t, env, "shift", input); err == nil {
		t.Fatal("expected error without --by")
	}

	if _, err := runCLI(t, env, "shift", input, "--by", "1s"); err != nil {
		t.Fatalf("shift: %v", err)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	requireContains(t, string(data), "00:00:02,000 --> 00:00:03,000")
}

func TestSyncCommandRejectsSinglePoint(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeFixture(t, env, "sample.srt", testSRT)

	_, err := runCLI(t, env, "sync", input, "--points", "1s=2s")
	if err == nil || !strings.Contains(err.Error(), "2 sync points") {
		t.Fatalf("expected sync point count error, got %v", err)
	}
}

func TestSyncCommandAppliesCorrection(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeFixture(t, env, "sample.srt", testSRT)
	output := filepath.Join(env.baseDir, "synced.srt")

	_, err := runCLI(t, env, "sync", input,
		"--points", "00:00:01,000=00:00:02,000",
		"--points", "00:00:03,000=00:00:06,000",
		"-o", output)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	requireContains(t, string(data), "00:00:02,000 --> 00:00:04,000")
	requireContains(t, string(data), "00:00:06,000 --> 00:00:08,000")
}

func TestMergeCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	first := writeFixture(t, env, "a.srt", "1\n00:00:01,000 --> 00:00:02,000\nFirst\n")
	second := writeFixture(t, env, "b.srt", "1\n00:00:00,500 --> 00:00:00,900\nSecond\n")
	output := filepath.Join(env.baseDir, "merged.srt")

	out, err := runCLI(t, env, "merge", first, second, "-o", output)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	requireContains(t, out, "Merged 2 files")

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if strings.Index(string(data), "Second") > strings.Index(string(data), "First") {
		t.Error("expected merged cues ordered by start time")
	}
}

func TestInspectCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeFixture(t, env, "sample.srt", testSRT)

	out, err := runCLI(t, env, "inspect", input)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Cues:     2")
	requireContains(t, out, "Hello")
	requireContains(t, out, "00:00:03.000")
}

func TestHistoryListAndClear(t *testing.T) {
	env := setupCLITestEnv(t)
	input := writeFixture(t, env, "sample.srt", testSRT)
	output := filepath.Join(env.baseDir, "sample.vtt")

	if _, err := runCLI(t, env, "convert", input, output); err != nil {
		t.Fatalf("convert: %v", err)
	}

	out, err := runCLI(t, env, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "convert")
	requireContains(t, out, "sample.vtt")

	if _, err := runCLI(t, env, "history", "clear"); err != nil {
		t.Fatalf("history clear: %v", err)
	}
	out, err = runCLI(t, env, "history", "list")
	if err != nil {
		t.Fatalf("history list: %v", err)
	}
	requireContains(t, out, "No recorded operations")
}

func TestConfigInitAndShow(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "fresh", "config.toml")

	out, err := runCLI(t, env, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	out, err = runCLI(t, env, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "default_format")
	requireContains(t, out, "[logging]")
}
