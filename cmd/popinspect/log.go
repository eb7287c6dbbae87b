package main

import (
	"fmt"
	"os"

	"github.com/kaspanet/popd/infrastructure/logger"
)

var log = logger.RegisterSubSystem("INSP")

// initLog sends every log to the log files and only warnings and above to
// stderr, so that stdout carries nothing but the inspection output
func initLog(logFile, errLogFile string) {
	err := logger.BackendLog.AddLogFile(logFile, logger.LevelTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", logFile, logger.LevelTrace, err)
		os.Exit(1)
	}
	err = logger.BackendLog.AddLogFile(errLogFile, logger.LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding log file %s as log rotator for level %s: %s", errLogFile, logger.LevelWarn, err)
		os.Exit(1)
	}
	err = logger.BackendLog.AddLogWriter(os.Stderr, logger.LevelWarn)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error adding stderr to the logger for level %s: %s", logger.LevelWarn, err)
		os.Exit(1)
	}
	err = logger.BackendLog.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting the logger: %s ", err)
		os.Exit(1)
	}
}
