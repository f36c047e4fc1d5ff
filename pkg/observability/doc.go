/*
Package observability turns driver lifecycle hooks into logs and Prometheus metrics.

Metrics are registered on an explicit *prometheus.Registry that hosts expose
through promhttp. Hooks from several sources can be combined with Chain.
*/
package observability
