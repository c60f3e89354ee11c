package debug

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu sync.Mutex
	fh *os.File
)

// Enable opens path for appending, Log is a no-op until then.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if fh != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("debug log: %w", err)
	}
	fh = f
	return nil
}

func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return fh != nil
}

// Log writes msg with a timestamp and the caller's file and line.
func Log(msg string) { write(2, msg) }

func Logf(format string, args ...any) {
	if !Enabled() {
		return
	}
	write(2, fmt.Sprintf(format, args...))
}

func write(depth int, msg string) {
	mu.Lock()
	defer mu.Unlock()
	if fh == nil {
		return
	}
	timeStr := time.Now().Format("2006-01-02 15:04:05.000")
	if _, fullPath, line, ok := runtime.Caller(depth); ok {
		msg = fmt.Sprintf("%s %s:%d %s", timeStr, filepath.Base(fullPath), line, msg)
	} else {
		msg = timeStr + " " + msg
	}
	if _, err := fh.WriteString(msg + "\n"); err != nil {
		log.Printf("debug log: %v", err)
	}
}

func Close() {
	mu.Lock()
	defer mu.Unlock()
	if fh == nil {
		return
	}
	fh.Sync()
	fh.Close()
	fh = nil
}
