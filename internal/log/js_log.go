//go:build js && wasm
// +build js,wasm

package log

import (
	"fmt"
	"io"
	"sync"
	"syscall/js"
)

var (
	console = js.Global().Get("console")

	outputMu sync.Mutex
	output   io.Writer
)

// SetOutput sends every enabled log line to w instead of the browser console. A nil writer restores the console.
func SetOutput(w io.Writer) {
	outputMu.Lock()
	output = w
	outputMu.Unlock()
}

func writeLog(c consoleType, s string) {
	outputMu.Lock()
	w := output
	outputMu.Unlock()
	if w != nil {
		fmt.Fprintf(w, "%s: %s\n", c.String(), s)
		return
	}
	console.Call(c.String(), s)
}
