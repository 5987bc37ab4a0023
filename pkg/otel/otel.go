package otel

import (
	"os"
	"strconv"
)

const instrumentationName = "github.com/adrianliechti/cardsheet"

type Observable interface {
	otelSetup()
}

// Debug reports whether DEBUG asks for debug logging.
func Debug() bool {
	return envFlag("DEBUG")
}

// Telemetry reports whether TELEMETRY enables the OTLP exporters.
func Telemetry() bool {
	return envFlag("TELEMETRY")
}

// envFlag is true for a set variable unless it parses as false.
func envFlag(key string) bool {
	val := os.Getenv(key)

	if val == "" {
		return false
	}

	enabled, err := strconv.ParseBool(val)

	if err != nil {
		return true
	}

	return enabled
}
