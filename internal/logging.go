// Package internal holds process-level setup shared by the board binaries.
package internal

import (
	"log"
	"os"
)

// InitLogging routes the standard logger to stdout with microsecond
// timestamps. The board runs under a supervisor that keeps its own
// per-file rotation, so nothing is written to disk here.
func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}
