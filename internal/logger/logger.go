package logger

import (
	"fmt"
	"io"
	"log"
	"os"
)

var (
	debugMode   bool
	output      io.Writer = os.Stderr
	debugLogger *log.Logger
	infoLogger  *log.Logger
	errorLogger *log.Logger
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput redirects all log output. Logs never go to stdout because the
// shell and the MCP stdio transport own it.
func SetOutput(w io.Writer) {
	output = w
	debugLogger = log.New(w, "[DEBUG] ", log.Ldate|log.Ltime|log.Lshortfile)
	infoLogger = log.New(w, "[INFO] ", log.Ldate|log.Ltime)
	errorLogger = log.New(w, "[ERROR] ", log.Ldate|log.Ltime|log.Lshortfile)
}

func SetDebugMode(enabled bool) {
	debugMode = enabled
	if debugMode {
		Debug("Debug mode enabled")
	}
}

func IsDebugMode() bool {
	return debugMode
}

func Debug(format string, args ...interface{}) {
	if debugMode {
		_ = debugLogger.Output(2, fmt.Sprintf(format, args...))
	}
}

func Info(format string, args ...interface{}) {
	infoLogger.Printf(format, args...)
}

func Error(format string, args ...interface{}) {
	_ = errorLogger.Output(2, fmt.Sprintf(format, args...))
}

func Warn(format string, args ...interface{}) {
	if debugMode {
		fmt.Fprintf(output, "[WARN] %s\n", fmt.Sprintf(format, args...))
	}
}
