package driven

import "context"

// CommandRunner executes an external command and returns its combined
// output. Adapters that shell out to external tools (yt-dlp) take a
// runner so tests can substitute a double.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
