//go:build !windows

package stderr

import (
	"fmt"
	"os"
	"sync"
	"testing"
)

func TestStart_CapturesFD2(t *testing.T) {
	var (
		mu    sync.Mutex
		lines []string
	)
	if err := Start(func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	}); err != nil {
		t.Skipf("cannot redirect stderr here: %v", err)
	}

	fmt.Fprintln(os.Stderr, "ALSA lib pcm.c: underrun occurred")
	fmt.Fprintln(os.Stderr, "   ")
	Stop()

	mu.Lock()
	defer mu.Unlock()
	if len(lines) != 1 || lines[0] != "ALSA lib pcm.c: underrun occurred" {
		t.Errorf("captured = %q, want the single non-empty line", lines)
	}
}

func TestStop_WithoutStart(t *testing.T) {
	Stop()
	WriteOriginal("")
}
