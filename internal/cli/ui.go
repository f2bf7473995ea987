package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/licensecharts/pkg/pipeline"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
)

var (
	colorTeal  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorAmber = lipgloss.Color("220")
	colorRed   = lipgloss.Color("167")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

// Styles shared with cmd/licensecharts.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorTeal)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorTeal)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorAmber)
)

var (
	styleValue       = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorTeal)
	styleCommand     = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	styleCached      = lipgloss.NewStyle().Foreground(colorGreen)
	styleFresh       = lipgloss.NewStyle().Foreground(colorGray)
)

// statusLine is a message prefixed by a colored icon.
type statusLine struct {
	icon  string
	color lipgloss.Color
	text  *lipgloss.Style
}

var (
	lineSuccess = statusLine{icon: "✓", color: colorGreen}
	lineError   = statusLine{icon: "✗", color: colorRed}
	lineWarning = statusLine{icon: "!", color: colorAmber, text: &StyleWarning}
	lineInfo    = statusLine{icon: "›", color: colorGray}
)

func (s statusLine) print(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if s.text != nil {
		msg = s.text.Render(msg)
	}
	fmt.Println(lipgloss.NewStyle().Foreground(s.color).Render(s.icon) + " " + msg)
}

func printSuccess(format string, args ...any) { lineSuccess.print(format, args...) }
func printError(format string, args ...any)   { lineError.print(format, args...) }
func printWarning(format string, args ...any) { lineWarning.print(format, args...) }
func printInfo(format string, args ...any)    { lineInfo.print(format, args...) }

// printDetail prints an indented muted line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + styleValue.Render(value))
}

// printStats prints chart statistics on a single line, e.g.
// "12 records · 41 primitives · 2.1 KB · fresh".
func printStats(res *pipeline.Result) {
	fmt.Println("  " + statsLine(res))
}

func statsLine(res *pipeline.Result) string {
	unit := "records"
	if res.Chart == scene.ChartUpSet {
		unit = "intersections"
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d %s", res.Stats.Items, unit)),
		StyleDim.Render(fmt.Sprintf("%d primitives", res.Stats.Primitives)),
		StyleDim.Render(formatBytes(res.Stats.Bytes)),
	}
	if res.CacheInfo.RenderHit {
		parts = append(parts, styleCached.Render("cached"))
	} else {
		parts = append(parts, styleFresh.Render("fresh"))
	}
	return strings.Join(parts, StyleDim.Render(" · "))
}

// formatBytes renders n with a binary unit.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGT"[exp])
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() { fmt.Println() }
