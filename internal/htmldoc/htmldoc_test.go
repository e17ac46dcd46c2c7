package htmldoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<!DOCTYPE html>
<html>
<head>
<style>body { background: #000000; }</style>
<style>.accent { color: #dc143c; }</style>
</head>
<body>
<h1>Sitefy</h1>
<section class="welcome-section hero">
  <p>Bem-vindo</p>
</section>
<div id="modelosProntos">
  <h3>
    Modelo Desenho Vetorial
  </h3>
</div>
</body>
</html>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse(sample)
	require.NoError(t, err)
	return doc
}

func TestFindByTag(t *testing.T) {
	doc := parseSample(t)

	h1 := doc.FindByTag("h1")
	require.NotNil(t, h1)
	assert.Equal(t, "Sitefy", strings.TrimSpace(Text(h1)))

	assert.Nil(t, doc.FindByTag("canvas"))
}

func TestFindByID(t *testing.T) {
	doc := parseSample(t)

	assert.NotNil(t, doc.FindByID("modelosProntos"))
	assert.Nil(t, doc.FindByID("canvas"))
}

func TestFindByClass(t *testing.T) {
	doc := parseSample(t)

	// Class attribute is a space-separated list; both entries must match.
	assert.NotNil(t, doc.FindByClass("welcome-section"))
	assert.NotNil(t, doc.FindByClass("hero"))
	assert.Nil(t, doc.FindByClass("welcome"))
}

func TestFindByText(t *testing.T) {
	doc := parseSample(t)

	// Surrounding whitespace in the markup must not defeat the match.
	assert.NotNil(t, doc.FindByText("Modelo Desenho Vetorial"))
	assert.Nil(t, doc.FindByText("Modelo Portfolio"))
}

func TestStyleText(t *testing.T) {
	doc := parseSample(t)

	style := doc.StyleText()
	assert.Contains(t, style, "#000000")
	assert.Contains(t, style, "#dc143c")
}

func TestParse_ForgivingOnSloppyMarkup(t *testing.T) {
	doc, err := Parse("<div class=welcome-section><p>unclosed")
	require.NoError(t, err)
	assert.NotNil(t, doc.FindByClass("welcome-section"))
}
