//go:build !windows

// Package stderr captures output that C libraries (ALSA, PulseAudio) write
// straight to file descriptor 2, which would otherwise corrupt the TUI.
// Captured lines go to the logger and to Messages.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Messages receives captured lines. Lines are dropped while it is full.
var Messages = make(chan string, 100)

// capture is the live redirection. nil when fd 2 is the terminal.
type capture struct {
	saved int // dup of the original fd 2
	r, w  *os.File
}

var (
	mu     sync.Mutex
	active *capture
)

// Start points fd 2 at a pipe and logs every line read from it at warn
// level. Call it before the audio device is opened. A second call is a no-op.
func Start(logger logrus.FieldLogger) error {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		return nil
	}

	fd := int(os.Stderr.Fd())
	r, w, err := os.Pipe()
	if err != nil {
		return err
	}
	saved, err := syscall.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return err
	}
	if err := syscall.Dup2(int(w.Fd()), fd); err != nil {
		syscall.Close(saved)
		r.Close()
		w.Close()
		return err
	}

	active = &capture{saved: saved, r: r, w: w}
	go forward(r, logger)
	return nil
}

func forward(r *os.File, logger logrus.FieldLogger) {
	lines := bufio.NewScanner(r)
	for lines.Scan() {
		line := strings.TrimSpace(lines.Text())
		if line == "" {
			continue
		}
		logger.WithField("source", "stderr").Warn(line)
		select {
		case Messages <- line:
		default:
		}
	}
}

// WriteOriginal writes msg to the terminal even while fd 2 is captured.
func WriteOriginal(msg string) {
	mu.Lock()
	defer mu.Unlock()
	if active != nil {
		_, _ = syscall.Write(active.saved, []byte(msg))
		return
	}
	_, _ = os.Stderr.WriteString(msg)
}

// Stop puts the original fd 2 back and closes the pipe.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if active == nil {
		return
	}
	_ = syscall.Dup2(active.saved, int(os.Stderr.Fd()))
	_ = syscall.Close(active.saved)
	active.w.Close()
	active.r.Close()
	active = nil
}
