package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommandExecutesWithoutError(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("root command returned error: %v", err)
	}
}

func TestRootCommandShowsHelp(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd := NewRootCommand()
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"--help"})

	err := rootCmd.Execute()
	if err != nil {
		t.Fatalf("root --help returned error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "presigned URLs") {
		t.Errorf("help text missing description, got: %s", output)
	}
}

func TestGlobalFlagsExist(t *testing.T) {
	rootCmd := NewRootCommand()

	flags := []struct {
		name         string
		defaultValue string
	}{
		{"region", ""},
		{"bucket", ""},
		{"debug", "false"},
		{"json", "false"},
	}

	for _, f := range flags {
		flag := rootCmd.PersistentFlags().Lookup(f.name)
		if flag == nil {
			t.Errorf("expected persistent flag --%s to be registered", f.name)
			continue
		}
		if flag.DefValue != f.defaultValue {
			t.Errorf("flag --%s: expected default %q, got %q", f.name, f.defaultValue, flag.DefValue)
		}
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	rootCmd := NewRootCommand()

	want := []string{"version", "token", "bucket", "object", "presign", "iam"}
	for _, name := range want {
		found := false
		for _, sub := range rootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected subcommand %q to be registered", name)
		}
	}
}
