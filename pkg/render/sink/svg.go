package sink

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/licensecharts/pkg/render/scene"
)

const fontFamily = `font-family="system-ui, -apple-system, sans-serif"`

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	legend     bool
	titles     bool
	background string
	fontSize   float64
}

// WithLegend draws a color legend of the stack keys in the top-right corner
// of stacked charts. It has no effect on other chart kinds.
func WithLegend() SVGOption { return func(r *svgRenderer) { r.legend = true } }

// WithoutTitles drops the <title> hover elements attached to primitives that
// carry inspection data.
func WithoutTitles() SVGOption { return func(r *svgRenderer) { r.titles = false } }

// WithBackground fills the frame with color before drawing.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// WithFontSize sets the default font size of the document.
func WithFontSize(px float64) SVGOption { return func(r *svgRenderer) { r.fontSize = px } }

// RenderSVG draws s as a standalone SVG document. Primitives are written in
// scene order, so the paint order of the scene is preserved.
func RenderSVG(s scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{titles: true, fontSize: 10}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	w, h := px(s.Width), px(s.Height)
	canvas.Start(w, h,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, w, h),
		fmt.Sprintf(`font-size="%.6gpx"`, r.fontSize),
		fontFamily)

	if r.background != "" {
		canvas.Rect(0, 0, w, h, attr("fill", r.background))
	}

	group := ""
	open := false
	for _, p := range s.Primitives {
		if p.Group != group || p.Kind == scene.KindAxis {
			if open {
				canvas.Gend()
				open = false
			}
			group = p.Group
			if group != "" {
				canvas.Group(groupAttrs(group)...)
				open = true
			}
		}
		r.primitive(canvas, p)
	}
	if open {
		canvas.Gend()
	}

	if r.legend && s.Chart == scene.ChartStacked {
		renderLegend(canvas, s)
	}
	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) primitive(canvas *svg.SVG, p scene.Primitive) {
	withTitle := r.titles && p.Datum != nil
	if withTitle {
		canvas.Group()
		canvas.Title(p.Datum.Title)
	}

	st := p.Style
	switch p.Kind {
	case scene.KindRect:
		g := p.Rect
		x0, y0 := px(g.X), px(g.Y)
		canvas.Rect(x0, y0, px(g.X+g.Width)-x0, px(g.Y+g.Height)-y0, styleAttrs(st)...)
	case scene.KindLine:
		g := p.Line
		canvas.Line(px(g.X1), px(g.Y1), px(g.X2), px(g.Y2), styleAttrs(st)...)
	case scene.KindCircle:
		g := p.Circle
		canvas.Circle(px(g.CX), px(g.CY), px(g.R), styleAttrs(st)...)
	case scene.KindText:
		g := p.Text
		attrs := append(styleAttrs(st), attr("text-anchor", g.Anchor), `dy="0.35em"`)
		canvas.Text(px(g.X), px(g.Y), g.Content, attrs...)
	case scene.KindAxis:
		if p.Axis != nil {
			renderAxis(canvas, *p.Axis, st)
		}
	}

	if withTitle {
		canvas.Gend()
	}
}

func renderAxis(canvas *svg.SVG, a scene.Axis, st scene.Style) {
	stroke := st.Stroke
	if stroke == "" {
		stroke = "currentColor"
	}
	fontAttrs := []string{`fill="currentColor"`}
	if st.FontSize > 0 {
		fontAttrs = append(fontAttrs, fmt.Sprintf(`font-size="%.6g"`, st.FontSize))
	}

	switch a.Orient {
	case scene.OrientBottom:
		canvas.Group(attr("class", "axis axis-bottom"), fmt.Sprintf(`transform="translate(0,%d)"`, px(a.Offset)))
		if a.DomainLine {
			o := px(a.TickSizeOuter)
			canvas.Path(fmt.Sprintf("M%d,%dV0H%dV%d", px(a.RangeMin), o, px(a.RangeMax), o), attr("stroke", stroke), `fill="none"`)
		}
		for _, t := range a.Ticks {
			x := px(t.Pos)
			canvas.Line(x, 0, x, px(a.TickSize), attr("stroke", stroke))
			canvas.Text(x, px(a.TickSize+3), t.Label, append(fontAttrs, `text-anchor="middle"`, `dy="0.71em"`)...)
		}
		if a.Label != "" {
			canvas.Text(px(a.RangeMax), px(a.TickSize+3+2*max(st.FontSize, 10)), a.Label, append(fontAttrs, `text-anchor="end"`)...)
		}
	case scene.OrientLeft:
		canvas.Group(attr("class", "axis axis-left"), fmt.Sprintf(`transform="translate(%d,0)"`, px(a.Offset)))
		if a.DomainLine {
			o := px(a.TickSizeOuter)
			canvas.Path(fmt.Sprintf("M%d,%dH0V%dH%d", -o, px(a.RangeMax), px(a.RangeMin), -o), attr("stroke", stroke), `fill="none"`)
		}
		for _, t := range a.Ticks {
			y := px(t.Pos)
			canvas.Line(-px(a.TickSize), y, 0, y, attr("stroke", stroke))
			canvas.Text(-px(a.TickSize+3), y, t.Label, append(fontAttrs, `text-anchor="end"`, `dy="0.32em"`)...)
		}
		if a.Label != "" {
			canvas.Text(-px(a.Offset), px(a.RangeMin), a.Label, append(fontAttrs, `text-anchor="start"`)...)
		}
	default:
		return
	}
	canvas.Gend()
}

func renderLegend(canvas *svg.SVG, s scene.Scene) {
	type entry struct{ key, fill string }
	var entries []entry
	seen := map[string]bool{}
	for _, p := range s.Primitives {
		if p.Kind != scene.KindRect || p.Group == "" || seen[p.Group] {
			continue
		}
		seen[p.Group] = true
		entries = append(entries, entry{p.Group, p.Style.Fill})
	}
	if len(entries) == 0 {
		return
	}

	const (
		swatch = 10
		row    = 16
		width  = 120
	)
	x := px(s.Width) - width
	canvas.Group(attr("class", "legend"))
	for i, e := range entries {
		y := 4 + i*row
		canvas.Rect(x, y, swatch, swatch, attr("fill", e.fill))
		canvas.Text(x+swatch+6, y+swatch/2, e.key, `dy="0.35em"`, `fill="currentColor"`)
	}
	canvas.Gend()
}

func styleAttrs(st scene.Style) []string {
	var attrs []string
	if st.Fill != "" {
		attrs = append(attrs, attr("fill", st.Fill))
	}
	if st.Stroke != "" {
		attrs = append(attrs, attr("stroke", st.Stroke))
	}
	if st.StrokeWidth > 0 {
		attrs = append(attrs, fmt.Sprintf(`stroke-width="%.6g"`, st.StrokeWidth))
	}
	if st.FontSize > 0 {
		attrs = append(attrs, fmt.Sprintf(`font-size="%.6g"`, st.FontSize))
	}
	return attrs
}

// attr formats an XML attribute. The value is escaped, so stack keys and
// colors from data files cannot break the document.
func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

var nonToken = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// groupAttrs names a primitive group. The class is reduced to a single CSS
// token; when that changes the name, the original goes into data-key.
func groupAttrs(group string) []string {
	class := strings.Trim(nonToken.ReplaceAllString(group, "-"), "-")
	if class == "" {
		class = "group"
	}
	if class == group {
		return []string{attr("class", class)}
	}
	return []string{attr("class", class), attr("data-key", group)}
}

// px rounds a coordinate to the integer grid svgo draws on.
func px(v float64) int {
	return int(math.Round(v))
}
