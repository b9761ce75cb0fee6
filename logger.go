package main

import (
	"io"
	"log"
	"os"
)

var (
	errorLogger *log.Logger
	debugLogger *log.Logger
)

func setupLogging(debug bool) {
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
	log.SetOutput(os.Stderr)
	setDebugLogging(debug)
}

func setDebugLogging(enabled bool) {
	var w io.Writer = io.Discard
	if enabled {
		w = os.Stderr
	}
	debugLogger = log.New(w, "[debug] ", log.LstdFlags|log.Lmicroseconds)
}

func logError(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf(format, v...)
	}
}

func logDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}
