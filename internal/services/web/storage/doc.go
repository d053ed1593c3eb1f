// Package storage declares the roster persistence contracts used by the web
// service: organizations, their members, and members' event excuses.
//
// Records are plain values. Adapters own ordering guarantees documented on
// each Repository method.
package storage
