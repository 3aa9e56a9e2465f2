package logger

import (
	"bytes"
	"os"
	"testing"
)

// capture redirects output for the duration of a test.
func capture(t *testing.T, verboseMode bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(verboseMode)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)

	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("chunk %d of %d", 1, 3)

	if got := buf.String(); got != "[DEBUG] chunk 1 of 3\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestQuietLevels_WhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("hidden")
	Info("hidden")
	Section("Pipeline")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSection_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Section("Paper p1")

	if got := buf.String(); got != "\n=== Paper p1 ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestInfo_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Info("processing paper %s", "p1")

	if got := buf.String(); got != "[INFO] processing paper p1\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestWarnAndError_AlwaysPrinted(t *testing.T) {
	buf := capture(t, false)

	Warn("chunk %d failed", 2)
	Error("download failed: %s", "404")

	want := "[WARN] chunk 2 failed\n[ERROR] download failed: 404\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output: %q", got)
	}
}
