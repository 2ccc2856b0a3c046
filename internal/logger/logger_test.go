package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withCapturedOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	SetOutput(buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return buf
}

func TestVerboseToggle(t *testing.T) {
	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}

func TestDebug_SilentWhenNotVerbose(t *testing.T) {
	buf := withCapturedOutput(t)
	SetVerbose(false)

	Debug("hidden %s", "message")

	assert.Empty(t, buf.String())
}

func TestDebug_PrintsWhenVerbose(t *testing.T) {
	buf := withCapturedOutput(t)
	SetVerbose(true)

	Debug("crawling %s", "example.com")

	assert.Equal(t, "[DEBUG] crawling example.com\n", buf.String())
}

func TestLevels(t *testing.T) {
	buf := withCapturedOutput(t)
	SetVerbose(true)

	Info("indexed %d chunks", 3)
	Warn("job %s failed", "abc")
	Section("Crawl")

	out := buf.String()
	assert.Contains(t, out, "[INFO] indexed 3 chunks\n")
	assert.Contains(t, out, "[WARN] job abc failed\n")
	assert.Contains(t, out, "=== Crawl ===\n")
}
