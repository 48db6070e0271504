package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "wikiexport"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration  *prom.HistogramVec
	exportDuration prom.Histogram
	stageResults   *prom.CounterVec
	exportOutcome  *prom.CounterVec
	pagesScanned   *prom.GaugeVec
	pagesSkipped   *prom.CounterVec
	references     *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
// A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual export stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		exportDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Total export duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		exportOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "export_outcomes_total",
			Help:      "Export outcomes by final status",
		}, []string{"outcome"}),
		pagesScanned: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_scanned",
			Help:      "Pages selected by the last corpus scan",
		}, []string{"policy"}),
		pagesSkipped: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pages_skipped_total",
			Help:      "Pages left out of the export by reason",
		}, []string{"reason"}),
		references: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "references_total",
			Help:      "Links and images processed by the resolver",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(pr.stageDuration, pr.exportDuration, pr.stageResults, pr.exportOutcome,
		pr.pagesScanned, pr.pagesSkipped, pr.references)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveExportDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.exportDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncExportOutcome(outcome ResultLabel) {
	if p == nil {
		return
	}
	p.exportOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetPagesScanned(policy string, n int) {
	if p == nil {
		return
	}
	p.pagesScanned.WithLabelValues(policy).Set(float64(n))
}

func (p *PrometheusRecorder) IncPagesSkipped(reason string) {
	if p == nil {
		return
	}
	p.pagesSkipped.WithLabelValues(reason).Inc()
}

func (p *PrometheusRecorder) IncReference(kind, outcome string) {
	if p == nil {
		return
	}
	p.references.WithLabelValues(kind, outcome).Inc()
}
