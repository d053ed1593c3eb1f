// Package scenes holds the leaf content of each route and the form actions
// that post back to them.
//
// Scenes are templ components built once at boot from the shared store and
// theme. Request data (viewer, query, localizer) is read from the page
// context at render time, so the same component value serves every request.
package scenes
