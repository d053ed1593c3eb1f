// Package web hosts the browser-facing roster service.
//
// It opens the roster repository, hydrates the shared store, mounts the
// route registry through app.Shell and serves it until shutdown.
package web
