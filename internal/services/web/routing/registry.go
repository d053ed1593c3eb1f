package routing

import (
	"strings"
	"unicode"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/routepath"
)

// Layout wraps a scene in page chrome.
type Layout func(templ.Component) templ.Component

// Descriptor declares one route.
type Descriptor struct {
	Path   string
	Type   RouteType
	Title  string
	Layout Layout
	Scene  templ.Component
}

// Registry is an ordered, immutable set of descriptors keyed by path.
type Registry struct {
	entries []Descriptor
	index   map[string]int
}

// NewRegistry validates descriptors and keeps them in the given order.
// Blank, relative and duplicate paths are rejected, as are paths carrying
// router pattern syntax, since a path matches only on full string equality.
func NewRegistry(descriptors ...Descriptor) (*Registry, error) {
	registry := &Registry{
		entries: make([]Descriptor, 0, len(descriptors)),
		index:   make(map[string]int, len(descriptors)),
	}
	for _, descriptor := range descriptors {
		path := strings.TrimSpace(descriptor.Path)
		switch {
		case path == "":
			return nil, &ConfigurationError{Path: descriptor.Path, Reason: "path is required"}
		case path != routepath.Wildcard && !strings.HasPrefix(path, "/"):
			return nil, &ConfigurationError{Path: path, Reason: "path must start with /"}
		case path != routepath.Wildcard && strings.ContainsFunc(path, patternRune):
			return nil, &ConfigurationError{Path: path, Reason: "path must be literal"}
		}
		if _, exists := registry.index[path]; exists {
			return nil, &ConfigurationError{Path: path, Reason: "duplicate path"}
		}
		descriptor.Path = path
		registry.index[path] = len(registry.entries)
		registry.entries = append(registry.entries, descriptor)
	}
	return registry, nil
}

func patternRune(r rune) bool {
	return r == '{' || r == '}' || r == '*' || unicode.IsSpace(r)
}

// Entries returns the descriptors in registration order.
func (r *Registry) Entries() []Descriptor {
	if r == nil {
		return nil
	}
	out := make([]Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of descriptors.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Lookup returns the descriptor registered for path.
func (r *Registry) Lookup(path string) (Descriptor, bool) {
	if r == nil {
		return Descriptor{}, false
	}
	idx, ok := r.index[strings.TrimSpace(path)]
	if !ok {
		return Descriptor{}, false
	}
	return r.entries[idx], true
}
