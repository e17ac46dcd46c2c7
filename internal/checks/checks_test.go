package checks

import (
	"context"
	"embed"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitefy/sitecheck/internal/fetch"
)

//go:embed testdata/home.html testdata/editor.html
var fixtures embed.FS

func fixture(t *testing.T, name string) string {
	t.Helper()
	data, err := fixtures.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return string(data)
}

// fixtureServer serves the two Sitefy pages, each optionally rewritten.
func fixtureServer(t *testing.T, rewrite func(path, body string) string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for _, page := range []string{HomePage, EditorPage} {
		body := fixture(t, page)
		if rewrite != nil {
			body = rewrite(page, body)
		}
		mux.HandleFunc("/"+page, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(body))
		})
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newSuite(t *testing.T, baseURL string) []Check {
	t.Helper()
	client := fetch.New(fetch.Config{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return Suite(client, 1000)
}

func findCheck(t *testing.T, suite []Check, name string) Check {
	t.Helper()
	for _, c := range suite {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q not in suite", name)
	return Check{}
}

func TestSuite_AllChecksPassAgainstHealthyPages(t *testing.T) {
	srv := fixtureServer(t, nil)
	suite := newSuite(t, srv.URL)

	require.Len(t, suite, 8)
	for _, c := range suite {
		assert.NoError(t, c.Fn(context.Background()), "check %q", c.Name)
	}
}

func TestSuite_Order(t *testing.T) {
	suite := newSuite(t, "http://localhost:0")

	var names []string
	for _, c := range suite {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{
		"Home Page Loading",
		"Editor Page Loading",
		"Home Page Structure",
		"usarModelo Function",
		"Complex HTML Model (Pica-pau)",
		"Editor Page Structure",
		"Mobile Responsiveness",
		"Firebase Integration",
	}, names)
}

func TestHomePageStructure_MissingThemeColor(t *testing.T) {
	srv := fixtureServer(t, func(path, body string) string {
		return strings.ReplaceAll(body, "#dc143c", "#ff8800")
	})
	suite := newSuite(t, srv.URL)

	err := findCheck(t, suite, "Home Page Structure").Fn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme colors not found")
}

func TestEditorPageStructure_MissingCanvas(t *testing.T) {
	srv := fixtureServer(t, func(path, body string) string {
		if path != EditorPage {
			return body
		}
		return strings.ReplaceAll(body, `id="canvas"`, `id="stage"`)
	})
	suite := newSuite(t, srv.URL)

	err := findCheck(t, suite, "Editor Page Structure").Fn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Canvas element not found")
}

func TestUsarModeloFunction_MissingScript(t *testing.T) {
	srv := fixtureServer(t, func(path, body string) string {
		return strings.ReplaceAll(body, "function usarModelo(", "function outraCoisa(")
	})
	suite := newSuite(t, srv.URL)

	err := findCheck(t, suite, "usarModelo Function").Fn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usarModelo function not found")
}

func TestLoadPage_NotFoundShortCircuits(t *testing.T) {
	// A 404 must fail before any content inspection: the served body would
	// otherwise satisfy every content condition.
	body := fixture(t, HomePage)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	suite := newSuite(t, srv.URL)

	err := findCheck(t, suite, "Home Page Loading").Fn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestLoadPage_BodyBelowFloor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	t.Cleanup(srv.Close)
	suite := newSuite(t, srv.URL)

	err := findCheck(t, suite, "Home Page Loading").Fn(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "implausibly short")
}

func TestSuite_UnreachableTarget(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	suite := newSuite(t, baseURL)
	for _, c := range suite {
		assert.Error(t, c.Fn(context.Background()), "check %q must fail when target is down", c.Name)
	}
}
