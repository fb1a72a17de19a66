package tools

import (
	"fmt"
	"log"
	"time"
)

var isEnabled = true
var printTimestamp = true

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func EnableLoggerTimestamp() {
	printTimestamp = true
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

// LogOutput prints progress messages meant for the user, unless the logger is disabled
func LogOutput(val ...interface{}) {
	if !isEnabled {
		return
	}
	message := fmt.Sprintln(val...)
	if printTimestamp {
		message = "[" + time.Now().Format("2006-01-02 15.04:05.000") + "] " + message
	}
	log.Print(message)
}
