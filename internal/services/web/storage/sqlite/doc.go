// Package sqlite provides the roster persistence adapter backed by SQLite.
package sqlite
