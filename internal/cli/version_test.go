package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestVersionCommandOutput(t *testing.T) {
	// Capture output from version command execution
	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("version command returned error: %v", err)
	}

	output := buf.String()

	// Version output must contain all three fields
	if !strings.Contains(output, "version:") {
		t.Errorf("version output missing 'version:' field, got: %s", output)
	}
	if !strings.Contains(output, "commit:") {
		t.Errorf("version output missing 'commit:' field, got: %s", output)
	}
	if !strings.Contains(output, "date:") {
		t.Errorf("version output missing 'date:' field, got: %s", output)
	}
}

func TestVersionCommandDevDefaults(t *testing.T) {
	// When no ldflags are injected, dev defaults should appear
	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("version command returned error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "dev") {
		t.Errorf("expected dev default version, got: %s", output)
	}
	if !strings.Contains(output, "none") {
		t.Errorf("expected 'none' default commit, got: %s", output)
	}
	if !strings.Contains(output, "unknown") {
		t.Errorf("expected 'unknown' default date, got: %s", output)
	}
}

func TestVersionCommandJSONOutput(t *testing.T) {
	// --json flag must produce valid JSON with version, commit, date fields
	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--json", "version"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("version --json returned error: %v", err)
	}

	output := buf.String()

	// Output must be valid JSON
	var result map[string]string
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("version --json output is not valid JSON: %v\noutput: %s", err, output)
	}

	if result["version"] != "dev" {
		t.Errorf("expected version 'dev', got: %q", result["version"])
	}
	if result["commit"] != "none" {
		t.Errorf("expected commit 'none', got: %q", result["commit"])
	}
	if result["date"] != "unknown" {
		t.Errorf("expected date 'unknown', got: %q", result["date"])
	}
}

func TestVersionCommandPlainTextWhenNoJSONFlag(t *testing.T) {
	// Without --json, output must remain plain text (not JSON)
	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"version"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("version command returned error: %v", err)
	}

	output := buf.String()

	if strings.HasPrefix(strings.TrimSpace(output), "{") {
		t.Errorf("version without --json should not produce JSON, got: %s", output)
	}
	if !strings.Contains(output, "cloudspark version:") {
		t.Errorf("plain text output missing 'cloudspark version:' label, got: %s", output)
	}
}
