//go:build !windows

// Package stderr captures output that C-backed audio libraries (ALSA through
// the speaker backend) write straight to file descriptor 2, bypassing
// os.Stderr, so it cannot corrupt the TUI. Captured lines are handed to a
// sink, normally the logger.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	readerDone chan struct{}
)

// Start redirects fd 2 into a pipe and calls sink for every non-empty line.
// sink runs on a dedicated goroutine. On error the program can continue;
// stderr output just stays on the terminal.
func Start(sink func(line string)) error {
	mu.Lock()
	defer mu.Unlock()

	if origStderr >= 0 {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := unix.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := unix.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	readerDone = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				sink(line)
			}
		}
	}(readerDone)

	return nil
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Used for fatal errors that must stay visible.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()

	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = unix.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for the reader to drain.
func Stop() {
	mu.Lock()
	defer mu.Unlock()

	if origStderr < 0 {
		return
	}

	_ = unix.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = unix.Close(origStderr)
	origStderr = -1

	pipeWrite.Close()
	<-readerDone
	pipeRead.Close()
}
