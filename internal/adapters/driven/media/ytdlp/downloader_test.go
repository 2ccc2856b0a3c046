package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRunner records the invocation and optionally drops a file into the
// destination directory to simulate a download.
type mockRunner struct {
	name      string
	args      []string
	output    []byte
	err       error
	produce   string
	targetDir string
}

func (m *mockRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	m.name = name
	m.args = args
	if m.produce != "" {
		path := filepath.Join(m.targetDir, m.produce)
		if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
			return nil, err
		}
	}
	return m.output, m.err
}

func TestDownloadAudio_ReturnsWavPath(t *testing.T) {
	dir := t.TempDir()
	runner := &mockRunner{produce: "audio.wav", targetDir: dir}
	d := New(runner)

	path, err := d.DownloadAudio(context.Background(), "https://youtu.be/abc", dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "audio.wav"), path)

	assert.Equal(t, Binary, runner.name)
	assert.Contains(t, runner.args, "bestaudio")
	assert.Contains(t, runner.args, "--audio-format")
	assert.Contains(t, runner.args, "wav")
	assert.Equal(t, "https://youtu.be/abc", runner.args[len(runner.args)-1])
}

func TestDownloadAudio_RunnerFailure(t *testing.T) {
	runner := &mockRunner{output: []byte("yt-dlp: video unavailable"), err: fmt.Errorf("exit status 1")}
	d := New(runner)

	_, err := d.DownloadAudio(context.Background(), "https://youtu.be/abc", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "audio download failed")
}

func TestDownloadAudio_NoWavProduced(t *testing.T) {
	d := New(&mockRunner{})

	_, err := d.DownloadAudio(context.Background(), "https://youtu.be/abc", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no wav file produced")
}
