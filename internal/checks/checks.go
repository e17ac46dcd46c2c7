// Package checks defines the fixed catalogue of smoke checks run against a
// deployed Sitefy site. Each check is an independent read-only probe: it
// fetches one of the two known pages fresh and inspects the body, either as
// raw text or as a parsed HTML document.
package checks

import (
	"context"
	"fmt"

	"github.com/sitefy/sitecheck/internal/fetch"
	"github.com/sitefy/sitecheck/internal/htmldoc"
)

// Pages probed by the suite, relative to the base URL.
const (
	HomePage   = "home.html"
	EditorPage = "editor.html"
)

// Check is one independent pass/fail probe against the remote target.
// Fn returns nil on success; any error is the failure diagnostic.
type Check struct {
	Name string
	Info string
	Fn   func(ctx context.Context) error
}

// Suite assembles the fixed ordered check catalogue. Order matters only for
// display: no check depends on another's result or side effects.
func Suite(client *fetch.Client, minBodyBytes int) []Check {
	s := &suite{client: client, minBodyBytes: minBodyBytes}
	return []Check{
		{
			Name: "Home Page Loading",
			Info: "GET /home.html - verify 200 and a plausible body",
			Fn:   s.homePageLoads,
		},
		{
			Name: "Editor Page Loading",
			Info: "GET /editor.html - verify 200 and a plausible body",
			Fn:   s.editorPageLoads,
		},
		{
			Name: "Home Page Structure",
			Info: "verify logo, theme colors, welcome section, and template cards",
			Fn:   s.homePageStructure,
		},
		{
			Name: "usarModelo Function",
			Info: "verify the template-loading script is present and wired",
			Fn:   s.usarModeloFunction,
		},
		{
			Name: "Complex HTML Model (Pica-pau)",
			Info: "verify the animated vector template ships with the page",
			Fn:   s.complexHTMLModel,
		},
		{
			Name: "Editor Page Structure",
			Info: "verify canvas, mobile frame, and complex-HTML loaders",
			Fn:   s.editorPageStructure,
		},
		{
			Name: "Mobile Responsiveness",
			Info: "verify viewport meta, media queries, and width constraints",
			Fn:   s.mobileResponsiveness,
		},
		{
			Name: "Firebase Integration",
			Info: "verify firebase compat scripts and configuration are embedded",
			Fn:   s.firebaseIntegration,
		},
	}
}

// suite holds the shared probe dependencies. It carries no mutable state:
// every check fetches its page fresh.
type suite struct {
	client       *fetch.Client
	minBodyBytes int
}

// loadPage fetches a page and enforces the uniform check contract: the
// status must be 200 and the body must clear the sanity floor. The status
// condition short-circuits before any content inspection.
func (s *suite) loadPage(ctx context.Context, path string) (*fetch.Page, error) {
	page, err := s.client.GetPage(ctx, path)
	if err != nil {
		return nil, err
	}
	if !page.OK() {
		return nil, fmt.Errorf("GET /%s returned status %d", path, page.StatusCode)
	}
	if len(page.Body) < s.minBodyBytes {
		return nil, fmt.Errorf("/%s body implausibly short: %d bytes (floor %d)",
			path, len(page.Body), s.minBodyBytes)
	}
	return page, nil
}

// parsePage fetches a page and parses it as an HTML document.
func (s *suite) parsePage(ctx context.Context, path string) (*fetch.Page, *htmldoc.Document, error) {
	page, err := s.loadPage(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	doc, err := htmldoc.Parse(page.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing /%s: %w", path, err)
	}
	return page, doc, nil
}
