package metrics

import "time"

// ResultLabel enumerates stage result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultWarning ResultLabel = "warning"
	ResultFatal   ResultLabel = "fatal"
)

// Recorder defines the hooks an export run reports through.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveExportDuration(d time.Duration)
	IncStageResult(stage string, result ResultLabel)
	IncExportOutcome(outcome ResultLabel)
	SetPagesScanned(policy string, n int)
	IncPagesSkipped(reason string)
	// IncReference counts one resolved link or image by kind ("document",
	// "embedded", "untouched") and outcome ("resolved", "unresolved").
	IncReference(kind, outcome string)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveExportDuration(time.Duration)        {}
func (NoopRecorder) IncStageResult(string, ResultLabel)         {}
func (NoopRecorder) IncExportOutcome(ResultLabel)               {}
func (NoopRecorder) SetPagesScanned(string, int)                {}
func (NoopRecorder) IncPagesSkipped(string)                     {}
func (NoopRecorder) IncReference(string, string)                {}
