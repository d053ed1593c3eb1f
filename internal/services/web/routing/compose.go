package routing

import "github.com/a-h/templ"

// RenderFunc produces a route's component tree.
type RenderFunc func() templ.Component

type decorator func(templ.Component) templ.Component

// Compose builds the render function for descriptor. The layout is applied
// first and the wrapper last, so the wrapper is outermost; either may be
// absent. A descriptor without a scene is a configuration error.
func Compose(descriptor Descriptor, wrapper *Wrapper) (RenderFunc, error) {
	if descriptor.Scene == nil {
		return nil, &ConfigurationError{Path: descriptor.Path, Reason: "scene is required"}
	}
	decorators := make([]decorator, 0, 2)
	if descriptor.Layout != nil {
		decorators = append(decorators, decorator(descriptor.Layout))
	}
	if wrapper != nil {
		decorators = append(decorators, wrapper.Decorate)
	}
	scene := descriptor.Scene
	return func() templ.Component {
		tree := scene
		for _, decorate := range decorators {
			tree = decorate(tree)
		}
		return tree
	}, nil
}
