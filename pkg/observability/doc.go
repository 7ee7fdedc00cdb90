/*
Package observability exposes Prometheus metrics for environment checks.

Metrics live on a private registry owned by each Metrics value, so several
engines (or tests) can run side by side without colliding on the default
registerer.
*/
package observability
