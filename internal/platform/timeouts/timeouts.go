// Package timeouts defines shared timeout constants used by the web service.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Session bounds how long a signed-in session token stays valid.
const Session = 12 * time.Hour

// Storage caps a single roster storage call issued while serving a request.
const Storage = 3 * time.Second
