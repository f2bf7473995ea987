package render

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/licensecharts/pkg/errors"
)

// converter is the librsvg command line tool used for raster and PDF output.
const converter = "rsvg-convert"

const installHint = "install librsvg (macOS: brew install librsvg, Linux: apt install librsvg2-bin)"

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG. A scale of 2 doubles the pixel
// size of the chart frame.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", scale)
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', 2, 64))
}

// ConverterAvailable reports whether rsvg-convert is on PATH.
func ConverterAvailable() bool {
	_, err := exec.LookPath(converter)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	if !ConverterAvailable() {
		return nil, errors.New(errors.ErrCodeUnsupported, "%s output needs %s: %s", format, converter, installHint)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, converter, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s to %s: %s", converter, format, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
