package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/licensecharts/pkg/cache"
	"github.com/matzehuels/licensecharts/pkg/errors"
)

const licenseAge = `[{"year":2019,"count":12,"status":"active"}]`

func newTestProvider(t *testing.T, h http.HandlerFunc, opts ...HTTPOption) *HTTPProvider {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	opts = append([]HTTPOption{WithHTTPClient(server.Client()), WithRetries(3, time.Millisecond)}, opts...)
	p, err := NewHTTPProvider(server.URL+"/", opts...)
	if err != nil {
		t.Fatalf("NewHTTPProvider() error: %v", err)
	}
	return p
}

func TestHTTPProviderFetch(t *testing.T) {
	var gotPath, gotAccept, gotToken string
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		gotToken = r.Header.Get("Authorization")
		w.Write([]byte(licenseAge))
	}, WithHeader("Authorization", "Bearer token"))

	body, err := p.Fetch(context.Background(), "license-age")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(body) != licenseAge {
		t.Errorf("Fetch() body = %s, want unmodified %s", body, licenseAge)
	}
	if gotPath != "/license-age" {
		t.Errorf("request path = %q, want /license-age", gotPath)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept header = %q", gotAccept)
	}
	if gotToken != "Bearer token" {
		t.Errorf("Authorization header = %q", gotToken)
	}
}

func TestHTTPProviderStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantCode  errors.Code
		wantCalls int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound, 1},
		{"bad request", http.StatusBadRequest, errors.ErrCodeNetwork, 1},
		{"server error is retried", http.StatusInternalServerError, errors.ErrCodeNetwork, 3},
		{"rate limited", http.StatusTooManyRequests, errors.ErrCodeRateLimited, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.Header().Set("Retry-After", "30")
				w.WriteHeader(tt.status)
			})

			_, err := p.Fetch(context.Background(), "states")
			if err == nil {
				t.Fatal("Fetch() expected error")
			}
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("Fetch() error code = %v, want %v (%v)", errors.GetCode(err), tt.wantCode, err)
			}
			if got := calls.Load(); got != tt.wantCalls {
				t.Errorf("server calls = %d, want %d", got, tt.wantCalls)
			}
		})
	}
}

func TestHTTPProviderRecoversAfterServerError(t *testing.T) {
	var calls atomic.Int32
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(licenseAge))
	})

	body, err := p.Fetch(context.Background(), "license-age")
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if string(body) != licenseAge {
		t.Errorf("Fetch() body = %s", body)
	}
	if calls.Load() != 2 {
		t.Errorf("server calls = %d, want 2", calls.Load())
	}
}

func TestHTTPProviderRejectsNonJSON(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>oops</html>"))
	})
	_, err := p.Fetch(context.Background(), "states")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Fetch() error = %v, want INVALID_INPUT", err)
	}
}

func TestHTTPProviderCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var calls atomic.Int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(licenseAge))
	}
	p := newTestProvider(t, handler, WithCache(c, time.Hour))

	for range 3 {
		if _, err := p.Fetch(context.Background(), "license-age"); err != nil {
			t.Fatalf("Fetch() error: %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1 (cached)", calls.Load())
	}

	WithRefresh(true)(p)
	if _, err := p.Fetch(context.Background(), "license-age"); err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("refresh should bypass the cache, calls = %d", calls.Load())
	}
}

func TestHTTPProviderValidation(t *testing.T) {
	if _, err := NewHTTPProvider("localhost:8000"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("NewHTTPProvider() without scheme error = %v", err)
	}

	p, err := NewHTTPProvider(DefaultBaseURL)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Fetch(context.Background(), "../etc/passwd"); !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("Fetch() with path traversal error = %v", err)
	}
}

func TestHTTPProviderContextCancel(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(licenseAge))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Fetch(ctx, "license-age"); err == nil {
		t.Error("Fetch() with cancelled context should fail")
	}
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"data.json": licenseAge,
		"data.yaml": "- year: 2019\n  count: 12\n  status: active\n",
		"data.toml": "[[records]]\nyear = 2019\ncount = 12\nstatus = \"active\"\n",
		"sets.yml":  "sets: [CA, NY]\nintersections:\n  - set: [CA]\n    size: 4\n",
		"bad.json":  "{",
		"data.csv":  "year,count\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	p := NewFileProvider()
	ctx := context.Background()

	for _, name := range []string{"data.json", "data.yaml", "data.toml"} {
		t.Run(name, func(t *testing.T) {
			body, err := p.Fetch(ctx, filepath.Join(dir, name))
			if err != nil {
				t.Fatalf("Fetch() error: %v", err)
			}
			var rows []map[string]any
			if err := json.Unmarshal(body, &rows); err != nil {
				t.Fatalf("body is not a JSON array: %s", body)
			}
			if len(rows) != 1 || rows[0]["status"] != "active" || rows[0]["year"] != float64(2019) {
				t.Errorf("unexpected rows: %v", rows)
			}
		})
	}

	body, err := p.Fetch(ctx, filepath.Join(dir, "sets.yml"))
	if err != nil {
		t.Fatalf("Fetch(sets.yml) error: %v", err)
	}
	var sets struct {
		Sets []string `json:"sets"`
	}
	if err := json.Unmarshal(body, &sets); err != nil || len(sets.Sets) != 2 {
		t.Errorf("unexpected set data: %s", body)
	}

	errTests := []struct {
		file string
		code errors.Code
	}{
		{"bad.json", errors.ErrCodeInvalidInput},
		{"data.csv", errors.ErrCodeInvalidFormat},
		{"missing.json", errors.ErrCodeFileNotFound},
	}
	for _, tt := range errTests {
		if _, err := p.Fetch(ctx, filepath.Join(dir, tt.file)); !errors.Is(err, tt.code) {
			t.Errorf("Fetch(%s) error = %v, want %v", tt.file, err, tt.code)
		}
	}
}

func TestIsFile(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"license-age", false},
		{"states", false},
		{"data.json", true},
		{"./data", true},
		{"dir/data", true},
	}
	for _, tt := range tests {
		if got := IsFile(tt.ref); got != tt.want {
			t.Errorf("IsFile(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}
