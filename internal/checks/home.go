package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/sitefy/sitecheck/internal/htmldoc"
)

// homePageLoads verifies /home.html is served at all.
func (s *suite) homePageLoads(ctx context.Context) error {
	_, err := s.loadPage(ctx, HomePage)
	return err
}

// homePageStructure verifies the structural skeleton of the home page:
// the Sitefy logo, the black/red theme, the welcome section, and the
// ready-made template cards.
func (s *suite) homePageStructure(ctx context.Context) error {
	_, doc, err := s.parsePage(ctx, HomePage)
	if err != nil {
		return err
	}

	logo := doc.FindByTag("h1")
	if logo == nil || !strings.Contains(htmldoc.Text(logo), "Sitefy") {
		return fmt.Errorf("Sitefy logo not found in h1")
	}

	style := doc.StyleText()
	if !strings.Contains(style, "#000000") || !strings.Contains(style, "#dc143c") {
		return fmt.Errorf("black/red theme colors not found in CSS")
	}

	if doc.FindByClass("welcome-section") == nil {
		return fmt.Errorf("welcome section not found")
	}

	if doc.FindByID("modelosProntos") == nil {
		return fmt.Errorf("Modelos Prontos section not found")
	}

	if doc.FindByText("Modelo Desenho Vetorial") == nil {
		return fmt.Errorf("Modelo Desenho Vetorial card not found")
	}

	return nil
}

// usarModeloFunction verifies the inline script that loads a template into
// the editor is present and references the template table.
func (s *suite) usarModeloFunction(ctx context.Context) error {
	page, err := s.loadPage(ctx, HomePage)
	if err != nil {
		return err
	}

	if !page.Contains("function usarModelo(") {
		return fmt.Errorf("usarModelo function not found")
	}
	if !page.Contains("modelosProntos[modeloId]") {
		return fmt.Errorf("usarModelo function does not access modelosProntos")
	}
	return nil
}

// complexHTMLModel verifies the animated Pica-pau vector template ships
// inline with the home page.
func (s *suite) complexHTMLModel(ctx context.Context) error {
	page, err := s.loadPage(ctx, HomePage)
	if err != nil {
		return err
	}

	if !page.Contains("Pica-Pau Vetorial") {
		return fmt.Errorf("Pica-pau model title not found")
	}
	if !page.Contains("@keyframes") {
		return fmt.Errorf("CSS animations not found")
	}
	if !page.Contains(`class="woody"`) {
		return fmt.Errorf("woody character class not found")
	}
	if !page.Contains("animation:") {
		return fmt.Errorf("animation properties not found")
	}
	return nil
}

// mobileResponsiveness verifies the home page declares a mobile viewport
// and carries responsive CSS.
func (s *suite) mobileResponsiveness(ctx context.Context) error {
	page, err := s.loadPage(ctx, HomePage)
	if err != nil {
		return err
	}

	if !page.Contains("viewport") || !page.Contains("width=device-width") {
		return fmt.Errorf("mobile viewport meta tag not found")
	}
	if !page.Contains("@media") {
		return fmt.Errorf("media queries for responsiveness not found")
	}
	if !page.Contains("max-width: 375px") {
		return fmt.Errorf("mobile width constraints not found")
	}
	return nil
}

// firebaseIntegration verifies the firebase compat scripts and the inline
// configuration block are embedded in the home page.
func (s *suite) firebaseIntegration(ctx context.Context) error {
	page, err := s.loadPage(ctx, HomePage)
	if err != nil {
		return err
	}

	if !page.Contains("firebase-app-compat.js") {
		return fmt.Errorf("firebase app script not found")
	}
	if !page.Contains("firebase-auth-compat.js") {
		return fmt.Errorf("firebase auth script not found")
	}
	if !page.Contains("firebaseConfig") {
		return fmt.Errorf("firebase configuration not found")
	}
	return nil
}
