// Package telemetry counts fetch outcomes in prometheus metrics and can
// serve them on a local listener.
package telemetry
