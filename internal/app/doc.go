// Package app wires canarywatch together: configuration, the log file,
// preferences, the canary API client, telemetry and the UI.
//
// Run starts the interactive dashboard. Snapshot performs the same
// initial load (metrics, then matches, then performance) once and prints
// the first page as plain text, which is handy for scripts and for
// checking connectivity without a terminal UI.
//
// Fatal errors are limited to startup: an unreadable or malformed config
// file, an invalid API URL, or a log file that cannot be opened. Once the
// dashboard runs, fetch failures only change what is displayed.
package app
