// Package metrics records export metrics behind the Recorder interface.
//
// Components take a Recorder and default to NoopRecorder, so nothing needs a nil
// check. The export command swaps in a PrometheusRecorder when a metrics textfile
// is configured and writes the gathered registry with WriteTextfile once the
// export finishes:
//
//	reg := prometheus.NewRegistry()
//	rec := metrics.NewPrometheusRecorder(reg)
//	exp := export.New(cfg, logger, rec)
//	...
//	_ = metrics.WriteTextfile(reg, "/var/lib/node_exporter/wikiexport.prom")
package metrics
