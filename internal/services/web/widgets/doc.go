// Package widgets holds the presentational leaf components. Each widget is a
// function of a theme and props returning a templ component; none of them
// touch the router or the store.
package widgets
