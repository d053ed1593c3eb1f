package scenes

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/platform/timeouts"
	apperrors "github.com/unkso/titan/internal/services/web/platform/errors"
	"github.com/unkso/titan/internal/services/web/platform/flash"
	"github.com/unkso/titan/internal/services/web/platform/httpx"
	"github.com/unkso/titan/internal/services/web/platform/requestmeta"
	"github.com/unkso/titan/internal/services/web/platform/weberror"
	"github.com/unkso/titan/internal/services/web/routepath"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/store"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
	"github.com/unkso/titan/internal/services/web/widgets"
)

// RosterTitleKey is the page title of the roster scene.
const RosterTitleKey = "web.roster.title"

// addUserField is the form field carrying the member id on addition.
const addUserField = "user"

// Roster renders the member table of the organization named by the org
// query parameter, or of the first top-level organization. Members can be
// added or removed only on the direct roster, not the view including
// children. The chain of command of the organization follows the table.
func Roster(roster store.Store, tokens *theme.Theme) templ.Component {
	if tokens == nil {
		tokens = theme.Default()
	}
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		page := templates.PageFrom(ctx)
		state := roster.GetState()
		includeChildren := parseFlag(page.Query.Get(routepath.IncludeChildrenParam))

		org, ok := selectOrganization(state, page.Query.Get(routepath.OrganizationParam))
		if !ok {
			if slug := strings.TrimSpace(page.Query.Get(routepath.OrganizationParam)); slug != "" {
				return fmt.Errorf("organization %q: %w", slug, storage.ErrNotFound)
			}
			return templates.Element("p", []templates.Attr{templates.A("class", "roster-empty")},
				templates.Text(templates.T(page.Loc, "web.roster.empty"))).Render(ctx, w)
		}

		members := state.Roster(org.ID, includeChildren)
		rows := make([]templ.Component, 0, len(members))
		for _, user := range members {
			props := rowProps(user)
			if !includeChildren {
				props = removableRow(ctx, roster, org, user, nil)
			}
			rows = append(rows, widgets.UserRow(tokens, props, &widgets.MenuState{}))
		}
		var body templ.Component
		if len(rows) == 0 {
			body = templates.Element("tr", nil, templates.Element("td", []templates.Attr{
				templates.A("colspan", "4"),
				templates.A("class", "roster-empty"),
			}, templates.Text(templates.T(page.Loc, "web.roster.empty"))))
		} else {
			body = templates.Fragment(rows...)
		}

		return templates.Element("section", []templates.Attr{
			templates.A("class", "scene-roster"),
			templates.A("data-organization", org.Slug),
		},
			templates.Element("h2", []templates.Attr{templates.A("style", "color:"+tokens.Palette.TextPrimary)},
				templates.Text(org.Name)),
			organizationPicker(tokens, page, state, org, includeChildren),
			addMemberForm(tokens, page.Loc, state, org, includeChildren),
			templates.Element("table", []templates.Attr{
				templates.A("class", "roster-table"),
				templates.A("style", templates.Styles("width:100%", "border-collapse:collapse", "background:"+tokens.Palette.Surface)),
			},
				templates.Element("thead", nil, templates.Element("tr", nil,
					headerCell(templates.T(page.Loc, "web.roster.member")),
					headerCell(templates.T(page.Loc, "web.roster.last_activity")),
					headerCell(templates.T(page.Loc, "web.roster.joined")),
					headerCell(""),
				)),
				templates.Element("tbody", nil, body),
			),
			chainOfCommand(tokens, page.Loc, state, org),
		).Render(ctx, w)
	})
}

func headerCell(label string) templ.Component {
	return templates.Element("th", []templates.Attr{templates.A("style", "text-align:left")}, templates.Text(label))
}

func organizationPicker(tokens *theme.Theme, page templates.PageContext, state store.State, current storage.Organization, includeChildren bool) templ.Component {
	buttons := make([]templ.Component, 0, len(state.Organizations)+1)
	for _, org := range state.Organizations {
		buttons = append(buttons, widgets.FlatButton(tokens, widgets.FlatButtonProps{
			Label:    org.Name,
			Href:     routepath.RosterOrganization(org.Slug, includeChildren),
			Primary:  org.ID == current.ID,
			Disabled: org.ID == current.ID,
		}))
	}
	toggle := widgets.FlatButton(tokens, widgets.FlatButtonProps{
		Label:   templates.T(page.Loc, "web.roster.include_children"),
		Href:    routepath.RosterOrganization(current.Slug, !includeChildren),
		Primary: includeChildren,
		Attrs:   []templates.Attr{templates.A("aria-pressed", strconv.FormatBool(includeChildren))},
	})
	return templates.Element("nav", []templates.Attr{
		templates.A("class", "roster-picker"),
		templates.A("aria-label", templates.T(page.Loc, "web.roster.organization")),
		templates.A("style", "margin-bottom:"+tokens.Space(2)),
	}, templates.Fragment(buttons...), toggle)
}

// addMemberForm offers every user not yet directly in org.
func addMemberForm(tokens *theme.Theme, loc templates.Localizer, state store.State, org storage.Organization, includeChildren bool) templ.Component {
	if includeChildren {
		return templates.Empty()
	}
	candidates := make([]storage.User, 0, len(state.Users))
	for _, user := range state.Users {
		if !state.IsMember(org.ID, user.ID) {
			candidates = append(candidates, user)
		}
	}
	if len(candidates) == 0 {
		return templates.Empty()
	}
	slices.SortFunc(candidates, func(a, b storage.User) int {
		if c := strings.Compare(strings.ToLower(a.Username), strings.ToLower(b.Username)); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	options := make([]templ.Component, 0, len(candidates))
	for _, user := range candidates {
		options = append(options, templates.Element("option", []templates.Attr{
			templates.A("value", strconv.FormatInt(user.ID, 10)),
		}, templates.Text(user.Username)))
	}
	action := routepath.AddMember(org.Slug)
	return templates.Element("form", []templates.Attr{
		templates.A("class", "roster-add"),
		templates.A("method", "post"),
		templates.A("action", action),
		templates.A("hx-post", action),
		templates.A("style", templates.Styles("display:flex", "gap:"+tokens.Space(1), "margin-bottom:"+tokens.Space(2))),
	},
		templates.Element("label", []templates.Attr{templates.A("for", "roster-add-user")},
			templates.Text(templates.T(loc, "web.roster.add_label"))),
		templates.Element("select", []templates.Attr{
			templates.A("id", "roster-add-user"),
			templates.A("name", addUserField),
			templates.Flag("required", true),
		}, options...),
		widgets.FlatButton(tokens, widgets.FlatButtonProps{
			Label:   templates.T(loc, "web.roster.add"),
			Primary: true,
			Type:    "submit",
		}),
	)
}

func selectOrganization(state store.State, slug string) (storage.Organization, bool) {
	if slug = strings.TrimSpace(slug); slug != "" {
		return state.OrganizationBySlug(slug)
	}
	if roots := state.Children(0); len(roots) > 0 {
		return roots[0], true
	}
	if len(state.Organizations) > 0 {
		return state.Organizations[0], true
	}
	return storage.Organization{}, false
}

func parseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

func rowProps(user storage.User) widgets.UserRowProps {
	return widgets.UserRowProps{
		User:        user,
		ProfileHref: routepath.Profile(user.ID),
	}
}

// removableRow builds row props whose removal callback dispatches
// MemberRemoved for org. A dispatch failure is stored in errp when set.
func removableRow(ctx context.Context, roster store.Store, org storage.Organization, user storage.User, errp *error) widgets.UserRowProps {
	props := rowProps(user)
	props.RemoveAction = routepath.RemoveMember(org.Slug)
	props.OnRemove = func(removed storage.User) {
		err := roster.Dispatch(ctx, store.MemberRemoved{OrganizationID: org.ID, UserID: removed.ID})
		if errp != nil {
			*errp = err
		}
	}
	return props
}

// RemoveAction removes the posted member from the organization named by the
// org query parameter and redirects back to its roster.
func RemoveAction(roster store.Store, tokens *theme.Theme, policy requestmeta.Policy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		state := roster.GetState()
		slug := strings.TrimSpace(r.Form.Get(routepath.OrganizationParam))
		org, ok := state.OrganizationBySlug(slug)
		if !ok {
			weberror.WriteError(w, r, tokens, fmt.Errorf("organization %q: %w", slug, storage.ErrNotFound))
			return
		}
		userID, err := strconv.ParseInt(strings.TrimSpace(r.PostForm.Get(widgets.RemoveUserField)), 10, 64)
		if err != nil || userID <= 0 {
			weberror.WriteError(w, r, tokens, apperrors.EK(apperrors.KindInvalidInput, "web.roster.not_member", "member id is invalid"))
			return
		}
		user, ok := state.Users[userID]
		if !ok || !state.IsMember(org.ID, userID) {
			weberror.WriteError(w, r, tokens, apperrors.EK(apperrors.KindNotFound, "web.roster.not_member", "member is not on this roster"))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Storage)
		defer cancel()
		var dispatchErr error
		props := removableRow(ctx, roster, org, user, &dispatchErr)
		menu := &widgets.MenuState{}
		menu.Open()
		widgets.RemoveUser(props, menu)
		if dispatchErr != nil {
			weberror.WriteError(w, r, tokens, fmt.Errorf("remove member %d from %s: %w", user.ID, org.Slug, dispatchErr))
			return
		}
		log.Printf("roster member removed organization=%s user_id=%d", org.Slug, user.ID)
		flash.Write(w, r, flash.Success("web.roster.notice_removed", user.Username), policy)
		httpx.WriteRedirect(w, r, routepath.RosterOrganization(org.Slug, false))
	})
}

// AddAction adds the posted user to the organization named by the org query
// parameter and redirects back to its roster. Adding a current member only
// reports it.
func AddAction(roster store.Store, tokens *theme.Theme, policy requestmeta.Policy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		state := roster.GetState()
		slug := strings.TrimSpace(r.Form.Get(routepath.OrganizationParam))
		org, ok := state.OrganizationBySlug(slug)
		if !ok {
			weberror.WriteError(w, r, tokens, fmt.Errorf("organization %q: %w", slug, storage.ErrNotFound))
			return
		}
		userID, err := strconv.ParseInt(strings.TrimSpace(r.PostForm.Get(addUserField)), 10, 64)
		if err != nil || userID <= 0 {
			weberror.WriteError(w, r, tokens, apperrors.EK(apperrors.KindInvalidInput, "web.roster.unknown_user", "member id is invalid"))
			return
		}
		user, ok := state.Users[userID]
		if !ok {
			weberror.WriteError(w, r, tokens, apperrors.EK(apperrors.KindNotFound, "web.roster.unknown_user", "member does not exist"))
			return
		}
		if state.IsMember(org.ID, user.ID) {
			flash.Write(w, r, flash.Info("web.roster.notice_already_member", user.Username), policy)
			httpx.WriteRedirect(w, r, routepath.RosterOrganization(org.Slug, false))
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Storage)
		defer cancel()
		if err := roster.Dispatch(ctx, store.MemberAdded{OrganizationID: org.ID, UserID: user.ID}); err != nil {
			weberror.WriteError(w, r, tokens, fmt.Errorf("add member %d to %s: %w", user.ID, org.Slug, err))
			return
		}
		log.Printf("roster member added organization=%s user_id=%d", org.Slug, user.ID)
		flash.Write(w, r, flash.Success("web.roster.notice_added", user.Username), policy)
		httpx.WriteRedirect(w, r, routepath.RosterOrganization(org.Slug, false))
	})
}
