// Package fs exports indexed documents as Markdown files with YAML
// frontmatter, one file per page.
package fs

import (
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/fwojciec/websearch"
)

// URLToPath converts a page URL to a relative, slash-separated file path
// rooted at the page's host.
// Example: https://example.com/docs/api/users → example.com/docs/api/users.md
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", websearch.Errorf(websearch.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", websearch.Errorf(websearch.EINVALID, "URL %q has no host", rawURL)
	}
	if port := u.Port(); port != "" {
		host += "_" + port
	}

	p := u.Path
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", websearch.Errorf(websearch.EINVALID, "path traversal in %q", rawURL)
		}
	}

	// Root or trailing slash → index.md
	switch {
	case p == "" || p == "/":
		p = "index.md"
	case strings.HasSuffix(p, "/"):
		p = strings.TrimPrefix(p, "/") + "index.md"
	default:
		p = strings.TrimPrefix(p, "/") + ".md"
	}

	return path.Join(host, p), nil
}

// FormatDocument formats a document with YAML frontmatter.
func FormatDocument(doc *websearch.Document) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: ")
	b.WriteString(doc.URL)
	b.WriteString("\ntitle: ")
	b.WriteString(strconv.Quote(doc.Title))
	if doc.Description != "" {
		b.WriteString("\ndescription: ")
		b.WriteString(strconv.Quote(doc.Description))
	}
	b.WriteString("\ncrawled: ")
	b.WriteString(doc.IndexedAt.Format("2006-01-02"))
	if doc.ContentHash != "" {
		b.WriteString("\nhash: ")
		b.WriteString(doc.ContentHash)
	}
	b.WriteString("\n---\n\n")
	b.WriteString(doc.Content)
	return b.String()
}
