//go:build !js
// +build !js

package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	outputMu sync.Mutex
	output   io.Writer
)

// SetOutput sends every enabled log line to w. A nil writer restores the default, which only
// writes to stderr when DEBUG=true or BRIEF_LOG_LEVEL is set.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

func writeLog(c consoleType, s string) {
	outputMu.Lock()
	defer outputMu.Unlock()
	w := output
	if w == nil {
		if os.Getenv("DEBUG") != "true" && os.Getenv(levelEnvKey) == "" {
			return
		}
		w = os.Stderr
	}
	fmt.Fprintf(w, "%s: %s\n", c.String(), s)
}
