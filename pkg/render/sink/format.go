package sink

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
)

// Format is an output file format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatSVG, FormatJSON, FormatPNG, FormatPDF}

// ParseFormat accepts a format name ("svg") or extension (".svg"),
// case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	switch f {
	case FormatSVG, FormatJSON, FormatPNG, FormatPDF:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q (want svg, json, png or pdf)", s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot infer format of %q: no extension", path)
	}
	return ParseFormat(ext)
}

// Options bundles the per-format options used by [Render].
type Options struct {
	SVG      []SVGOption
	JSON     []JSONOption
	PNGScale float64
}

// Render writes s in format f.
func Render(ctx context.Context, s scene.Scene, f Format, opts Options) ([]byte, error) {
	switch f {
	case FormatSVG:
		return RenderSVG(s, opts.SVG...), nil
	case FormatJSON:
		return RenderJSON(s, opts.JSON...)
	case FormatPNG:
		pngOpts := []PNGOption{WithPNGSVGOptions(opts.SVG...)}
		if opts.PNGScale > 0 {
			pngOpts = append(pngOpts, WithScale(opts.PNGScale))
		}
		return RenderPNG(ctx, s, pngOpts...)
	case FormatPDF:
		return RenderPDF(ctx, s, WithPDFSVGOptions(opts.SVG...))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported output format %q", f)
	}
}
