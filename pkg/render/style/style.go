// Package style holds the explicit styling configuration shared by the layout
// and scene assembly steps.
//
// Nothing in the render packages reads ambient styling constants; every
// color, size, and margin flows in through a [Theme]. [Default] reproduces the
// look of the original charts.
package style

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-gg/palette/brewer"
)

// Colors used by the default theme.
const (
	ColorUnknown   = "#ccc"
	ColorActive    = "steelblue"
	ColorInactive  = "#e2e8f0"
	ColorText      = "#000"
	ColorAxis      = "currentColor"
	DefaultPadding = 0.1
)

// Margins are the pixel insets of the plot area inside the frame.
type Margins struct {
	Top    float64 `toml:"top" json:"top"`
	Right  float64 `toml:"right" json:"right"`
	Bottom float64 `toml:"bottom" json:"bottom"`
	Left   float64 `toml:"left" json:"left"`
}

// Horizontal returns Left + Right.
func (m Margins) Horizontal() float64 { return m.Left + m.Right }

// Vertical returns Top + Bottom.
func (m Margins) Vertical() float64 { return m.Top + m.Bottom }

// Palette is an ordered list of CSS colors.
type Palette []string

// Theme is the complete styling configuration for both chart kinds.
type Theme struct {
	Palette     Palette // stack key colors, cycled when shorter than the key set
	Unknown     string  // color for keys outside the color domain
	Margins     Margins // stacked chart margins
	Padding     float64 // band padding as a fraction of the step
	TickSpacing float64 // target pixels between bottom-axis ticks
	TickSize    float64
	FontSize    float64
	UpSet       UpSet
}

// UpSet styles the set-intersection plot.
type UpSet struct {
	Height         float64
	Margins        Margins
	BarWidth       float64
	BarSpacing     float64
	BarHeadroom    float64 // space kept free above the tallest bar
	DotRadius      float64
	DotSpacing     float64
	DotOffset      float64 // gap between the bar baseline and the first dot row
	LabelGap       float64 // gap between a bar top and its value label
	SetLabelOffset float64 // distance of set labels left of the dot column
	FontSize       float64
	BarColor       string
	ActiveColor    string
	InactiveColor  string
	ConnectorWidth float64
}

// Default returns the theme used when no configuration overrides it.
// The palette is left nil, so the stacked layout colors its keys with
// [Spectral] sized to the number of keys.
func Default() Theme {
	return Theme{
		Unknown:     ColorUnknown,
		Margins:     Margins{Top: 10, Right: 10, Bottom: 20, Left: 40},
		Padding:     DefaultPadding,
		TickSpacing: 40,
		TickSize:    6,
		FontSize:    10,
		UpSet: UpSet{
			Height:         600,
			Margins:        Margins{Top: 20, Right: 20, Bottom: 320, Left: 40},
			BarWidth:       25,
			BarSpacing:     10,
			BarHeadroom:    50,
			DotRadius:      10,
			DotSpacing:     30,
			DotOffset:      30,
			LabelGap:       5,
			SetLabelOffset: 10,
			FontSize:       12,
			BarColor:       ColorActive,
			ActiveColor:    ColorActive,
			InactiveColor:  ColorInactive,
			ConnectorWidth: 1,
		},
	}
}

const (
	spectralMin = 3
	spectralMax = 11
)

// Spectral returns the ColorBrewer Spectral scheme with n colors. Below three
// keys the three-level variant is truncated; above eleven the eleven-level
// variant is returned and colors repeat.
func Spectral(n int) Palette {
	if n <= 0 {
		return nil
	}
	levels := min(max(n, spectralMin), spectralMax)
	variant := brewer.Spectral[levels]
	p := make(Palette, 0, len(variant))
	for _, c := range variant {
		p = append(p, Hex(c))
	}
	if n < len(p) {
		p = p[:n]
	}
	return p
}

// Hex formats c as a #rrggbb string.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
