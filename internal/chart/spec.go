package chart

import (
	"fmt"

	"github.com/airdash/airdash/internal/airquality"
)

// Axis describes one chart axis.
type Axis struct {
	Label string `json:"label"`
	Kind  string `json:"kind"` // "category", "time" or "value"
}

// Spec is a renderer-agnostic chart description that browser-side chart
// libraries can draw directly.
type Spec struct {
	Type        string    `json:"type"`
	Orientation string    `json:"orientation"`
	Color       string    `json:"color"`
	Title       string    `json:"title"`
	X           Axis      `json:"x"`
	Y           Axis      `json:"y"`
	Labels      []string  `json:"labels"`
	Values      []float64 `json:"values"`
}

// SpecFor describes s for client-side drawing.
func SpecFor(s *airquality.Series) Spec {
	category := Axis{Label: s.CategoryLabel, Kind: "category"}
	if s.Chart == airquality.ChartLine {
		category.Kind = "time"
	}
	value := Axis{Label: s.ValueLabel, Kind: "value"}

	spec := Spec{
		Type:        string(s.Chart),
		Orientation: "vertical",
		Color:       Hex(s.View),
		Title:       s.Title,
		X:           category,
		Y:           value,
		Labels:      s.Labels(),
		Values:      s.Values(),
	}
	if s.Horizontal {
		spec.Orientation = "horizontal"
		spec.X, spec.Y = value, category
	}
	return spec
}

// Hex returns the view color as #rrggbb.
func Hex(v airquality.View) string {
	c := Color(v)
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
