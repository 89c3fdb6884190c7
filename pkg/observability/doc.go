/*
Package observability turns preview lifecycle events into Prometheus metrics.

Metrics are exposed as domain.LifecycleHooks so they can be merged with logging
hooks and handed to the pipeline and the session.
*/
package observability
