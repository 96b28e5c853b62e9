package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/naka-gawa/github-dashboard/internal/chart"
	"github.com/naka-gawa/github-dashboard/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	repoColor     = "#e11c47"
	languageColor = "#2563eb"
)

// page is the data handed to the profile template.
type page struct {
	View   usecase.View
	State  string
	Login  string
	Notice string
	Cards  []statCard
	Charts []chartPanel
}

type statCard struct {
	Title string
	Count int
}

type modeLink struct {
	Mode   chart.Mode
	URL    string
	Active bool
}

type chartPanel struct {
	Kind  chart.Kind
	Title string
	Mode  chart.Mode
	Links []modeLink
	HTML  string
}

// seriesFor selects the ranking of view that feeds the chart kind.
func seriesFor(kind chart.Kind, view usecase.View) chart.Series {
	switch kind {
	case chart.KindForks:
		return chart.NewSeries("Forked Repos", "repo", "count", view.Forks).WithColor(repoColor)
	case chart.KindStars:
		return chart.NewSeries("Popular Repos", "repo", "stars", view.Stars).WithColor(repoColor)
	default:
		return chart.NewSeries("Used Languages", "language", "count", view.Languages).WithColor(languageColor)
	}
}

// modesFrom reads the per-chart display modes from query, falling back to
// each kind's default for missing or unknown values.
func modesFrom(query url.Values) map[chart.Kind]chart.Mode {
	modes := make(map[chart.Kind]chart.Mode, len(chart.Kinds()))
	for _, kind := range chart.Kinds() {
		mode, err := chart.ParseMode(query.Get(string(kind)))
		if err != nil {
			mode = kind.DefaultMode()
		}
		modes[kind] = mode
	}
	return modes
}

func modeLinks(login string, kind chart.Kind, modes map[chart.Kind]chart.Mode) []modeLink {
	links := make([]modeLink, 0, len(chart.Modes()))
	for _, m := range chart.Modes() {
		q := url.Values{}
		for k, v := range modes {
			q.Set(string(k), string(v))
		}
		q.Set(string(kind), string(m))
		links = append(links, modeLink{
			Mode:   m,
			URL:    "/users/" + url.PathEscape(login) + "?" + q.Encode(),
			Active: modes[kind] == m,
		})
	}
	return links
}

// newPage builds the template data for view. Charts are rendered only for a
// succeeded view.
func newPage(view usecase.View, modes map[chart.Kind]chart.Mode, notice string) (page, error) {
	p := page{
		View:   view,
		State:  view.State.String(),
		Login:  view.Login,
		Notice: notice,
	}
	if view.State != usecase.StateSucceeded || view.User == nil {
		return p, nil
	}

	p.Cards = []statCard{
		{Title: "Total Repositories", Count: view.User.TotalRepositories},
		{Title: "Followers", Count: view.User.Followers},
		{Title: "Following", Count: view.User.Following},
		{Title: "Gists", Count: view.User.Gists},
	}
	for _, kind := range chart.Kinds() {
		series := seriesFor(kind, view)
		var buf bytes.Buffer
		if err := chart.Render(&buf, modes[kind], series); err != nil {
			return p, err
		}
		p.Charts = append(p.Charts, chartPanel{
			Kind:  kind,
			Title: series.Title,
			Mode:  modes[kind],
			Links: modeLinks(view.Login, kind, modes),
			HTML:  buf.String(),
		})
	}
	return p, nil
}

// renderPage writes the HTML for p. It has no other inputs or effects.
func renderPage(w io.Writer, p page) error {
	return pageTemplate.ExecuteTemplate(w, "profile.html", p)
}
