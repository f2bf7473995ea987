package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/licensecharts/pkg/config"
	"github.com/matzehuels/licensecharts/pkg/errors"
	"github.com/matzehuels/licensecharts/pkg/render/scene"
)

const licenseAgeBody = `[
	{"year": 2019, "count": 5, "status": "active"},
	{"year": 2019, "count": 3, "status": "expired"},
	{"year": 2020, "count": 4, "status": "active"}
]`

// setupService starts a fake data service and points the config at it with
// caching disabled.
func setupService(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/license-age":
			w.Write([]byte(licenseAgeBody))
		case "/license-overlap":
			w.Write([]byte(`{"sets":["CA","NY"],"intersections":[{"set":["CA"],"size":2},{"set":["CA","NY"],"size":1}]}`))
		case "/states":
			w.Write([]byte(`[{"stateFips":"06","designation":"CA","count":3}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvSourceURL, server.URL)
	t.Setenv(config.EnvCacheBackend, "none")
	return server
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"fetch", "stacked", "upset", "render", "inspect", "pick", "datasets", "config", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestStackedCommand(t *testing.T) {
	setupService(t)
	out := filepath.Join(t.TempDir(), "age")

	if err := execute(t, "stacked", "license-age", "-o", out, "-f", "svg,json"); err != nil {
		t.Fatalf("stacked: %v", err)
	}
	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(svg), []byte("<")) || !bytes.Contains(svg, []byte("<rect")) {
		t.Errorf("svg output looks wrong: %.80s", svg)
	}
	if _, err := os.Stat(out + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestStackedCommandFromFile(t *testing.T) {
	setupService(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "licenses.yaml")
	data := "- {yr: 2019, n: 2, kind: a}\n- {yr: 2020, n: 3, kind: b}\n"
	if err := os.WriteFile(in, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "chart.svg")

	if err := execute(t, "stacked", in, "-x", "yr", "-y", "n", "-z", "kind", "-o", out); err != nil {
		t.Fatalf("stacked: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output missing: %v", err)
	}

	err := execute(t, "stacked", in, "-o", out)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("file without fields: error = %v, want INVALID_INPUT", err)
	}
}

func TestUpSetCommandRejectsStackedDataset(t *testing.T) {
	setupService(t)
	err := execute(t, "upset", "license-age", "-o", filepath.Join(t.TempDir(), "x.svg"))
	if !errors.Is(err, errors.ErrCodeInvalidChart) {
		t.Errorf("error = %v, want INVALID_CHART", err)
	}
}

func TestFetchCommand(t *testing.T) {
	setupService(t)
	out := filepath.Join(t.TempDir(), "age.json")

	if err := execute(t, "fetch", "license-age", "-o", out); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != licenseAgeBody {
		t.Errorf("fetched body was modified:\n%s", got)
	}

	err = execute(t, "fetch", "no-such-dataset", "-o", out)
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown dataset: error = %v, want NOT_FOUND", err)
	}
}

func TestRenderCommand(t *testing.T) {
	setupService(t)
	dir := t.TempDir()

	if err := execute(t, "render", "-d", dir, "license-age", "license-overlap"); err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, name := range []string{"license-age.svg", "license-overlap.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}

	err := execute(t, "render", "-d", dir, "states")
	if !errors.Is(err, errors.ErrCodeInvalidChart) {
		t.Errorf("relay-only dataset: error = %v, want INVALID_CHART", err)
	}
}

func TestRenderCommandReportsFailures(t *testing.T) {
	setupService(t)
	dir := t.TempDir()

	// licensees is not served by the fake service.
	err := execute(t, "render", "-d", dir, "license-age", "licensees")
	if err == nil || !strings.Contains(err.Error(), "licensees") {
		t.Fatalf("error = %v, want failure naming licensees", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "license-age.svg")); err != nil {
		t.Errorf("successful dataset not written: %v", err)
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Stacked.Width = 900

	popts := buildOptions(cfg, scene.ChartStacked, "license-age", chartOpts{formats: "svg,png"})
	if popts.Dataset != "license-age" || popts.File != "" {
		t.Errorf("input = %q/%q, want dataset", popts.Dataset, popts.File)
	}
	if popts.Width != 900 || popts.Height != cfg.Stacked.Height {
		t.Errorf("frame = %gx%g, want config size", popts.Width, popts.Height)
	}
	if len(popts.Formats) != 2 || popts.Theme == nil {
		t.Errorf("formats = %v, theme = %v", popts.Formats, popts.Theme)
	}

	popts = buildOptions(cfg, scene.ChartUpSet, "./sets.yml", chartOpts{width: 300})
	if popts.File != "./sets.yml" {
		t.Errorf("File = %q, want ./sets.yml", popts.File)
	}
	if popts.Height != 0 {
		t.Errorf("upset Height = %g, want 0 so the theme decides", popts.Height)
	}
}
