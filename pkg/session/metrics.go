package session

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/adrianliechti/cardsheet/pkg/session"

var (
	meter = otel.Meter(instrumentationName)

	rowsWritten, _  = meter.Int64Counter("cardsheet.rows.written", metric.WithDescription("Report rows written"))
	filesSkipped, _ = meter.Int64Counter("cardsheet.files.skipped", metric.WithDescription("Files skipped after a failed extraction"))
	runsHalted, _   = meter.Int64Counter("cardsheet.runs.halted", metric.WithDescription("Runs halted before processing"))
	runsFailed, _   = meter.Int64Counter("cardsheet.runs.failed", metric.WithDescription("Runs aborted by a fatal error"))
)
