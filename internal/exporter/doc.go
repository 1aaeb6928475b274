// Package exporter converts notebooks into HTML reports and keeps score.
//
// ExportFile handles one notebook: it creates the output directory, runs the
// converter, and prints a status line. ExportAll discovers every notebook
// under the notebooks root and exports each one into the mirrored directory
// under the reports root, one at a time. Conversion failures never abort a
// batch; they are counted in the returned Summary. Only context cancellation
// and discovery errors stop a run early.
package exporter
