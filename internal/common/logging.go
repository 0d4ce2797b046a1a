package common

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLog tees the standard logger to a rotating file when path is set.
// The returned writer is also suitable for access logs.
func SetupLog(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("ERROR: cannot create log directory %s: %v", dir, err)
			return os.Stderr
		}
	}

	w := io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    32, // MB
		MaxBackups: 3,
		MaxAge:     14,
		Compress:   true,
	})
	log.SetOutput(w)
	return w
}
