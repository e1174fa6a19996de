package logger

import (
	"log"
	"os"
)

// StdLogger is a lightweight implementation backed by Go's log package.
// Progress and errors go to stderr so stdout stays clean for report output.
type StdLogger struct {
	verbose bool
	std     *log.Logger
}

// NewStd creates a StdLogger. Debug and Info lines are suppressed unless
// verbose is set; Warn and Error always print.
func NewStd(verbose bool) *StdLogger {
	return &StdLogger{verbose: verbose, std: log.New(os.Stderr, "", log.LstdFlags)}
}

// SetVerbose toggles Debug/Info output at runtime.
func (l *StdLogger) SetVerbose(verbose bool) {
	l.verbose = verbose
}

func (l *StdLogger) Debug(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.std.Println("[DEBUG]", msg, fields)
}

func (l *StdLogger) Info(msg string, fields map[string]interface{}) {
	if !l.verbose {
		return
	}
	l.std.Println("[INFO]", msg, fields)
}

func (l *StdLogger) Warn(msg string, fields map[string]interface{}) {
	l.std.Println("[WARN]", msg, fields)
}

func (l *StdLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.std.Println("[ERROR]", msg, err, fields)
}
