// Package routes declares the service's route table and form actions.
package routes

import (
	"errors"
	"net/http"

	"github.com/unkso/titan/internal/services/web/app"
	"github.com/unkso/titan/internal/services/web/layouts"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/routing"
	"github.com/unkso/titan/internal/services/web/scenes"
)

// Default returns the ordered route registry.
func Default(deps app.Dependencies) (*routing.Registry, error) {
	if deps.Store == nil {
		return nil, errors.New("routes: store is required")
	}
	roster := layouts.Roster(deps.Theme, layouts.DefaultNav())
	return routing.NewRegistry(
		routing.Descriptor{
			Path:   routepath.Root,
			Type:   routing.Authenticated,
			Title:  scenes.HomeTitleKey,
			Layout: roster,
			Scene:  scenes.Home(deps.Store, deps.Theme),
		},
		routing.Descriptor{
			Path:   routepath.Login,
			Type:   routing.Unauthenticated,
			Title:  scenes.LoginTitleKey,
			Layout: layouts.Centered(deps.Theme),
			Scene:  scenes.Login(deps.Theme),
		},
		routing.Descriptor{
			Path:   routepath.Roster,
			Type:   routing.Authenticated,
			Title:  scenes.RosterTitleKey,
			Layout: roster,
			Scene:  scenes.Roster(deps.Store, deps.Theme),
		},
		routing.Descriptor{
			Path:   routepath.RosterProfile,
			Type:   routing.Authenticated,
			Title:  scenes.ProfileTitleKey,
			Layout: roster,
			Scene:  scenes.Profile(deps.Store, deps.Theme),
		},
		routing.Descriptor{
			Path:  routepath.Wildcard,
			Title: scenes.NotFoundTitleKey,
			Scene: scenes.NotFound(),
		},
	)
}

// Actions returns the form handlers mounted next to the registry.
func Actions(deps app.Dependencies) []app.Action {
	return []app.Action{
		{
			Method:  http.MethodPost,
			Path:    routepath.Login,
			Type:    routing.Unauthenticated,
			Handler: scenes.LoginAction(deps.Repository, deps.Sessions, deps.Theme, deps.Policy),
		},
		{
			Method:  http.MethodPost,
			Path:    routepath.Logout,
			Type:    routing.Authenticated,
			Handler: scenes.LogoutAction(deps.Sessions, deps.Policy),
		},
		{
			Method:  http.MethodPost,
			Path:    routepath.RosterRemove,
			Type:    routing.Authenticated,
			Handler: scenes.RemoveAction(deps.Store, deps.Theme, deps.Policy),
		},
		{
			Method:  http.MethodPost,
			Path:    routepath.RosterAdd,
			Type:    routing.Authenticated,
			Handler: scenes.AddAction(deps.Store, deps.Theme, deps.Policy),
		},
	}
}
