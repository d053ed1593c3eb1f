package widgets

import (
	"strconv"
	"time"

	"github.com/a-h/templ"
	"github.com/unkso/titan/internal/services/web/storage"
	"github.com/unkso/titan/internal/services/web/templates"
	"github.com/unkso/titan/internal/services/web/theme"
)

// EventExcuseList renders excuses with a month header at every change of
// (month, year) between consecutive items. Items are expected in date order;
// the list does not sort them.
func EventExcuseList(tokens *theme.Theme, items []storage.EventExcuse) templ.Component {
	if tokens == nil {
		tokens = theme.Default()
	}
	children := make([]templ.Component, 0, len(items)*2)
	var prev time.Time
	for i, item := range items {
		date := item.EventDate.UTC()
		if i == 0 || date.Month() != prev.Month() || date.Year() != prev.Year() {
			children = append(children, monthHeader(tokens, date))
		}
		prev = date
		children = append(children, EventExcuseItem(tokens, item))
	}
	return templates.Element("div", []templates.Attr{templates.A("class", "excuse-list")}, children...)
}

func monthHeader(tokens *theme.Theme, date time.Time) templ.Component {
	return templates.Element("h3", []templates.Attr{
		templates.A("class", "excuse-month"),
		templates.A("style", templates.Styles(
			"color:"+tokens.Palette.TextPrimary,
			"margin:"+tokens.Space(2)+" 0 "+tokens.Space(1),
		)),
	}, templates.Text(date.Format(MonthLayout)))
}

// EventExcuseItem renders one excuse row.
func EventExcuseItem(tokens *theme.Theme, item storage.EventExcuse) templ.Component {
	if tokens == nil {
		tokens = theme.Default()
	}
	return templates.Element("div", []templates.Attr{
		templates.A("class", "excuse-row"),
		templates.A("data-excuse-id", strconv.FormatInt(item.ID, 10)),
		templates.A("style", templates.Styles(
			"background:"+tokens.Palette.Surface,
			"padding:"+tokens.Space(1),
			"margin-bottom:"+strconv.Itoa(tokens.Spacing.Gutter)+"px",
		)),
	},
		templates.Element("strong", []templates.Attr{templates.A("class", "excuse-type")}, templates.Text(item.EventType.Name)),
		templates.Text(" "),
		templates.Element("time", []templates.Attr{
			templates.A("datetime", item.EventDate.UTC().Format(time.DateOnly)),
			templates.A("style", "color:"+tokens.Palette.TextSecondary),
		}, templates.Text(formatDate(item.EventDate))),
		templates.Element("p", []templates.Attr{templates.A("class", "excuse-comments")}, templates.Text(item.Comments)),
	)
}
