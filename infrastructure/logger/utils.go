package logger

import (
	"time"
)

// LogAndMeasureExecutionTime logs at debug level that functionName started
// and returns onEnd, which logs how long it took. Callers defer onEnd.
func LogAndMeasureExecutionTime(log *Logger, functionName string) (onEnd func()) {
	start := time.Now()
	log.Debugf("%s started", functionName)
	return func() {
		log.Debugf("%s finished in %s", functionName, time.Since(start))
	}
}
