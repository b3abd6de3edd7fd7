// Package dashboard holds the monitoring state and the rules that fold
// fetch outcomes into it: the match store, filter engine, paginator,
// status monitor and refresh scheduler. Presentation goes through the
// View interface, so the package has no terminal dependencies.
package dashboard
