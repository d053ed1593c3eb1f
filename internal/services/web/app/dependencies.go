package app

import (
	"log"

	"github.com/unkso/titan/internal/services/web/platform/observability"
	"github.com/unkso/titan/internal/services/web/platform/requestmeta"
	"github.com/unkso/titan/internal/services/web/session"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/store"
	"github.com/unkso/titan/internal/services/web/theme"
)

// Dependencies are the process-wide collaborators supplied once at mount.
// The shell passes them by reference and never reassigns them; roster
// mutations go through Store.Dispatch.
type Dependencies struct {
	Theme      *theme.Theme
	Store      store.Store
	Repository storage.Repository
	Sessions   *session.Manager
	Metrics    *observability.Metrics
	Policy     requestmeta.Policy
	Logger     *log.Logger
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Theme == nil {
		d.Theme = theme.Default()
	}
	if d.Logger == nil {
		d.Logger = log.Default()
	}
	return d
}
