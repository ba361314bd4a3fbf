// Package metrics counts organize and undo runs with Prometheus collectors
// and writes them to a textfile when metrics_file is configured.
package metrics
