// Package routing turns route descriptors into render functions.
//
// A Descriptor names a path, an access type, an optional layout and the scene
// component. Resolve maps the access type to its Wrapper, and Compose stacks
// the layout and the wrapper around the scene. The app package mounts the
// resulting render functions on exact-match HTTP patterns.
package routing
