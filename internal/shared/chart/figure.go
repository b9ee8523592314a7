// Package chart builds Plotly-compatible figure descriptors for the dashboard page.
package chart

// LoadingText is shown in place of data that is not available yet.
const LoadingText = "Loading..."

// barPalette is cycled across the bars of a bar chart.
var barPalette = []string{"lightslategray", "crimson", "orange", "green", "silver", "red"}

// barPaletteRepeat * len(barPalette) is the number of bars that get a color.
const barPaletteRepeat = 30

// Figure is a chart descriptor as consumed by Plotly.newPlot / Plotly.react.
type Figure struct {
	Data   []Trace `json:"data,omitempty"`
	Layout Layout  `json:"layout"`
}

// Trace is one data series of a figure.
type Trace struct {
	Type     string   `json:"type"`
	Mode     string   `json:"mode,omitempty"`
	X        []string `json:"x,omitempty"`
	Y        any      `json:"y,omitempty"`
	Labels   []string `json:"labels,omitempty"`
	Values   []int    `json:"values,omitempty"`
	TextInfo string   `json:"textinfo,omitempty"`
	Marker   *Marker  `json:"marker,omitempty"`
}

// Marker holds per-point styling.
type Marker struct {
	Color []string `json:"color,omitempty"`
}

// Layout describes titles, axes and annotations.
type Layout struct {
	Title       string       `json:"title,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Annotations []Annotation `json:"annotations,omitempty"`
}

// Axis controls axis visibility.
type Axis struct {
	Visible bool `json:"visible"`
}

// Annotation is a free text label placed on the figure.
type Annotation struct {
	Text      string `json:"text"`
	XRef      string `json:"xref"`
	YRef      string `json:"yref"`
	ShowArrow bool   `json:"showarrow"`
	Font      Font   `json:"font"`
}

// Font sets the annotation font.
type Font struct {
	Size int `json:"size"`
}

func hiddenLegend(title string) Layout {
	show := false
	return Layout{Title: title, ShowLegend: &show}
}

// BarColors returns the fixed bar palette repeated to cover up to 180 bars.
func BarColors() []string {
	colors := make([]string, 0, len(barPalette)*barPaletteRepeat)
	for i := 0; i < barPaletteRepeat; i++ {
		colors = append(colors, barPalette...)
	}
	return colors
}

// Bar builds a bar chart with one bar per label.
func Bar(title string, labels []string, counts []int) Figure {
	return Figure{
		Data: []Trace{{
			Type:   "bar",
			X:      labels,
			Y:      counts,
			Marker: &Marker{Color: BarColors()},
		}},
		Layout: hiddenLegend(title),
	}
}

// Pie builds a pie chart showing label and value on each slice.
func Pie(title string, labels []string, values []int) Figure {
	return Figure{
		Data: []Trace{{
			Type:     "pie",
			Labels:   labels,
			Values:   values,
			TextInfo: "label+value",
		}},
		Layout: hiddenLegend(title),
	}
}

// Line builds a line chart over x/y. y is marshalled as given.
func Line(title string, x []string, y any) Figure {
	return Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "lines",
			X:    x,
			Y:    y,
		}},
		Layout: hiddenLegend(title),
	}
}

// Loading is the placeholder figure: both axes hidden and a centered "Loading..." label.
func Loading() Figure {
	return Figure{
		Layout: Layout{
			XAxis: &Axis{Visible: false},
			YAxis: &Axis{Visible: false},
			Annotations: []Annotation{{
				Text:      LoadingText,
				XRef:      "paper",
				YRef:      "paper",
				ShowArrow: false,
				Font:      Font{Size: 28},
			}},
		},
	}
}

// IsLoading reports whether f is the placeholder figure.
func (f Figure) IsLoading() bool {
	return len(f.Data) == 0 && len(f.Layout.Annotations) == 1 && f.Layout.Annotations[0].Text == LoadingText
}
