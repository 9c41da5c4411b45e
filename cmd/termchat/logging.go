package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// maxLogSize triggers rotation of the previous run's log
const maxLogSize = 10 * 1024 * 1024

// setupLogging points the standard logger at path
// A disabled log discards everything; the terminal is never written to
// An existing file over maxLogSize is renamed with a timestamp first
func setupLogging(enabled, debug bool, path string) (*os.File, error) {
	if !enabled {
		log.SetOutput(io.Discard)
		return nil, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		ext := filepath.Ext(path)
		rotated := fmt.Sprintf("%s.%s%s", path[:len(path)-len(ext)], time.Now().Format("20060102-150405"), ext)
		if err := os.Rename(path, rotated); err != nil {
			log.SetOutput(io.Discard)
			return nil, fmt.Errorf("rotate log: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil, fmt.Errorf("open log: %w", err)
	}

	flags := log.LstdFlags | log.Lmicroseconds
	if debug {
		flags |= log.Lshortfile
	}
	log.SetFlags(flags)
	log.SetOutput(f)
	return f, nil
}
