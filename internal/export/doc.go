// Package export runs a complete wiki export: resolve the root, scan pages,
// load their content, add the global TOC, render and write the HTML document.
// Every entry point (CLI export, scan, watch) goes through Exporter.
package export
