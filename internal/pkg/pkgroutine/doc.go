// Package pkgroutine runs the service's long-lived goroutines.
//
// The Manager limits concurrency, collects returned errors and turns panics
// into errors so that a crashing listener is reported on shutdown.
package pkgroutine
