package console

import (
	"bytes"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Colored output
// ---------------------------------------------------------------------------

func TestSuccess_Colored(t *testing.T) {
	var buf bytes.Buffer
	c := &ConsoleLogger{Colored: true, Writer: &buf}

	c.Success("bucket %q created", "media")

	got := buf.String()
	if !strings.HasPrefix(got, green) {
		t.Errorf("output %q missing green prefix", got)
	}
	if !strings.Contains(got, `bucket "media" created`) {
		t.Errorf("output %q missing message", got)
	}
	if !strings.HasSuffix(got, endColor+"\n") {
		t.Errorf("output %q missing reset suffix", got)
	}
}

func TestError_Colored(t *testing.T) {
	var buf bytes.Buffer
	c := &ConsoleLogger{Colored: true, Writer: &buf}

	c.Error("an error occurred: %v", "boom")

	got := buf.String()
	if !strings.HasPrefix(got, red) {
		t.Errorf("output %q missing red prefix", got)
	}
}

// ---------------------------------------------------------------------------
// Non-TTY degradation
// ---------------------------------------------------------------------------

func TestOutput_NotColoredWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	c := &ConsoleLogger{Colored: false, Writer: &buf}

	c.Success("done")
	c.Error("failed")
	c.Plain("note")

	got := buf.String()
	if strings.Contains(got, "\033[") {
		t.Errorf("non-colored output contains ANSI escapes: %q", got)
	}
	want := "done\nfailed\nnote\n"
	if got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

// Plain never colors, even on a colored logger.
func TestPlain_NeverColored(t *testing.T) {
	var buf bytes.Buffer
	c := &ConsoleLogger{Colored: true, Writer: &buf}

	c.Plain("raw line")

	if got := buf.String(); got != "raw line\n" {
		t.Errorf("Plain output = %q; want %q", got, "raw line\n")
	}
}

// ---------------------------------------------------------------------------
// Nop
// ---------------------------------------------------------------------------

func TestNop_DiscardsEverything(t *testing.T) {
	// Must not panic or write anywhere.
	n := Nop()
	n.Success("s")
	n.Error("e")
	n.Plain("p")
}
