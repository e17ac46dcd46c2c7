package checks

import (
	"context"
	"fmt"
)

// editorPageLoads verifies /editor.html is served at all.
func (s *suite) editorPageLoads(ctx context.Context) error {
	_, err := s.loadPage(ctx, EditorPage)
	return err
}

// editorPageStructure verifies the editor page carries its canvas, the
// mobile frame reference, and the complex-HTML loader functions.
func (s *suite) editorPageStructure(ctx context.Context) error {
	page, doc, err := s.parsePage(ctx, EditorPage)
	if err != nil {
		return err
	}

	if doc.FindByID("canvas") == nil {
		return fmt.Errorf("Canvas element not found")
	}

	if !page.Contains("375x667") {
		return fmt.Errorf("mobile viewport reference not found")
	}
	if !page.Contains("isComplexHTML") {
		return fmt.Errorf("isComplexHTML function not found")
	}
	if !page.Contains("loadComplexHTML") {
		return fmt.Errorf("loadComplexHTML function not found")
	}
	return nil
}
