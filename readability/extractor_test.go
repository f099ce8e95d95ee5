package readability_test

import (
	"testing"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.Extract("")

	require.Error(t, err)
	assert.Equal(t, websearch.EINVALID, websearch.ErrorCode(err))
}

func TestExtractor_ExtractsTitle(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Page Title</title></head>
<body><article><p>Content</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
}

func TestExtractor_ExtractsDescription(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head>
<title>Release Notes</title>
<meta name="description" content="Everything that changed in version two.">
</head>
<body><article><p>Version two brings a faster parser and a smaller binary for every platform.</p></article></body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Everything that changed in version two.", result.Description)
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	// The article must clear go-readability's character threshold, otherwise
	// it retries without stripping unlikely candidates and keeps the whole body.
	html := `<!DOCTYPE html>
<html>
<head><title>Tuning the Crawl Frontier</title></head>
<body>
<nav class="menu" role="navigation"><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<aside class="sidebar" role="complementary"><p>Sidebar navigation content</p></aside>
<article>
<p>This is the important article paragraph text that must be kept in the output, and it opens a long piece about crawling.</p>
<p>A crawler keeps a frontier of addresses, pops one at a time, fetches it, and pushes every link it finds back onto the frontier.</p>
<p>Depth-first traversal uses a stack, so the most recently discovered link is visited next, which keeps related pages close together.</p>
<p>Breadth-first traversal uses a queue instead, so pages are visited level by level, which spreads the load across a whole site.</p>
<p>Either way, the crawler remembers every address it has attempted, so that a page linked from many places is fetched only once.</p>
<p>Constraints decide which links are worth following, and a rate limiter keeps the crawler polite towards the servers it visits.</p>
</article>
<footer class="footer"><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Equal(t, "Tuning the Crawl Frontier", result.Title)
	assert.Contains(t, result.ContentHTML, "important article paragraph text")
	assert.Contains(t, result.ContentHTML, "Breadth-first traversal uses a queue")
	assert.NotContains(t, result.ContentHTML, "Home Nav Link")
	assert.NotContains(t, result.ContentHTML, "Sidebar navigation content")
	assert.NotContains(t, result.ContentHTML, "Footer copyright text")
}

func TestExtractor_PreservesStructure(t *testing.T) {
	t.Parallel()

	// go-readability may demote h1 to h2, but heading text is preserved
	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Main Heading</h1>
<p>Some intro text here.</p>
<h2>Subheading Level Two</h2>
<p>Here is a list:</p>
<ul>
<li>First item</li>
<li>Second item</li>
</ul>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	result, err := ext.Extract(html)

	require.NoError(t, err)
	assert.Contains(t, result.ContentHTML, "Main Heading")
	assert.Contains(t, result.ContentHTML, "Subheading Level Two")
	assert.Contains(t, result.ContentHTML, "<ul")
	assert.Contains(t, result.ContentHTML, "<li")
}
