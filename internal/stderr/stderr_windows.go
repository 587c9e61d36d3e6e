//go:build windows

// Package stderr captures C library noise on fd 2. The Windows audio
// backend writes none, so capture is skipped there.
package stderr

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Messages stays empty.
var Messages = make(chan string)

func Start(_ logrus.FieldLogger) error { return nil }

func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

func Stop() {}
