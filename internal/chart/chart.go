// Package chart renders rankings as browser charts.
//
// A chart is selected by a Mode. Each mode maps to one fixed go-echarts
// strategy, and the data is plotted exactly as ranked: the package does
// no sorting, filtering or aggregation of its own.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// Mode is the display mode of a chart.
type Mode string

const (
	Bar   Mode = "bar"
	Line  Mode = "line"
	Pie   Mode = "pie"
	Area  Mode = "area"
	Radar Mode = "radar"
)

// ErrUnknownMode is returned for a display mode outside the supported set.
var ErrUnknownMode = errors.New("unknown chart mode")

// Modes lists every supported display mode.
func Modes() []Mode {
	return []Mode{Bar, Line, Pie, Area, Radar}
}

// ParseMode converts s into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := strategies[m]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownMode)
	}
	return m, nil
}

// Point is implemented by every ranking row.
type Point interface {
	Point() (label string, value int)
}

// Series is a ranking prepared for plotting.
type Series struct {
	Title  string
	XKey   string
	YKey   string
	Color  string
	Labels []string
	Values []int
}

// NewSeries copies points into a Series, keeping their order.
func NewSeries[P Point](title, xKey, yKey string, points []P) Series {
	s := Series{
		Title:  title,
		XKey:   xKey,
		YKey:   yKey,
		Labels: make([]string, 0, len(points)),
		Values: make([]int, 0, len(points)),
	}
	for _, p := range points {
		label, value := p.Point()
		s.Labels = append(s.Labels, label)
		s.Values = append(s.Values, value)
	}
	return s
}

// WithColor returns a copy of s drawn in color.
func (s Series) WithColor(color string) Series {
	s.Color = color
	return s
}

type renderer interface {
	Render(w io.Writer) error
}

var strategies = map[Mode]func(Series) renderer{
	Bar:   barChart,
	Line:  lineChart,
	Pie:   pieChart,
	Area:  areaChart,
	Radar: radarChart,
}

// Render writes s as a standalone HTML chart page in the given mode.
func Render(w io.Writer, mode Mode, s Series) error {
	build, ok := strategies[mode]
	if !ok {
		return fmt.Errorf("%q: %w", mode, ErrUnknownMode)
	}
	if err := build(s).Render(w); err != nil {
		return fmt.Errorf("failed to render %s chart: %w", mode, err)
	}
	return nil
}

func globalOpts(s Series) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: s.Title,
			Width:     "100%",
			Height:    "400px",
		}),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
	}
}

func axisOpts(s Series) []charts.GlobalOpts {
	return append(globalOpts(s),
		charts.WithXAxisOpts(opts.XAxis{Name: s.XKey}),
		charts.WithYAxisOpts(opts.YAxis{Name: s.YKey}),
	)
}

func seriesOpts(s Series) []charts.SeriesOpts {
	if s.Color == "" {
		return nil
	}
	return []charts.SeriesOpts{charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color})}
}

func barChart(s Series) renderer {
	data := make([]opts.BarData, 0, len(s.Values))
	for _, v := range s.Values {
		data = append(data, opts.BarData{Value: v})
	}
	c := charts.NewBar()
	c.SetGlobalOptions(axisOpts(s)...)
	c.SetXAxis(s.Labels).AddSeries(s.YKey, data, seriesOpts(s)...)
	return c
}

func lineData(s Series) []opts.LineData {
	data := make([]opts.LineData, 0, len(s.Values))
	for _, v := range s.Values {
		data = append(data, opts.LineData{Value: v})
	}
	return data
}

func lineChart(s Series) renderer {
	c := charts.NewLine()
	c.SetGlobalOptions(axisOpts(s)...)
	c.SetXAxis(s.Labels).AddSeries(s.YKey, lineData(s), seriesOpts(s)...)
	return c
}

func areaChart(s Series) renderer {
	c := charts.NewLine()
	c.SetGlobalOptions(axisOpts(s)...)
	options := append(seriesOpts(s), charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.4}))
	c.SetXAxis(s.Labels).AddSeries(s.YKey, lineData(s), options...)
	return c
}

func pieChart(s Series) renderer {
	data := make([]opts.PieData, 0, len(s.Values))
	for i, v := range s.Values {
		data = append(data, opts.PieData{Name: s.Labels[i], Value: v})
	}
	c := charts.NewPie()
	c.SetGlobalOptions(globalOpts(s)...)
	c.AddSeries(s.YKey, data)
	return c
}

func radarChart(s Series) renderer {
	indicators := make([]*opts.Indicator, 0, len(s.Labels))
	values := make([]float32, 0, len(s.Values))
	peak := 1
	for _, v := range s.Values {
		if v > peak {
			peak = v
		}
	}
	for i, label := range s.Labels {
		indicators = append(indicators, &opts.Indicator{Name: label, Max: float32(peak)})
		values = append(values, float32(s.Values[i]))
	}
	c := charts.NewRadar()
	options := append(globalOpts(s), charts.WithRadarComponentOpts(opts.RadarComponent{Indicator: indicators}))
	c.SetGlobalOptions(options...)
	c.AddSeries(s.YKey, []opts.RadarData{{Name: s.YKey, Value: values}}, seriesOpts(s)...)
	return c
}

// Kind identifies one of the dashboard charts.
type Kind string

const (
	KindForks     Kind = "forks"
	KindStars     Kind = "stars"
	KindLanguages Kind = "languages"
)

// Kinds lists the dashboard charts in page order.
func Kinds() []Kind {
	return []Kind{KindStars, KindForks, KindLanguages}
}

// DefaultMode is the mode a chart kind is drawn in when none is requested.
func (k Kind) DefaultMode() Mode {
	if k == KindLanguages {
		return Line
	}
	return Bar
}
