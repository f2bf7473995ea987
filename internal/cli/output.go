package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/sink"
)

// stdoutPath selects standard output as the destination.
const stdoutPath = "-"

// nopCloser wraps os.Stdout so it can be handed out as an io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput creates the file at path, overwriting it. An empty path or "-"
// selects standard output.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == stdoutPath {
		return nopCloser{os.Stdout}, nil
	}
	if err := errors.ValidateOutputPath(path); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// writeFile writes data to path via openOutput.
func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// basePath derives the base output path from the output flag and the input
// name. An empty output strips the extension and directory from input, so
// "data/licensees.yaml" becomes "licensees". An output with a format
// extension has it stripped.
func basePath(output, input string) string {
	if output == "" {
		name := filepath.Base(input)
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if _, err := sink.ParseFormat(ext); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPaths maps each format to its destination. A single format with an
// explicit output writes exactly there; otherwise every format gets
// <base>.<format>.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// writeArtifacts writes each rendered format to its path, in formats order,
// and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, paths map[string]string, formats []string) ([]string, error) {
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := paths[f]
		if err := writeFile(path, data); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
