package main

import (
	"fmt"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/crawl"
)

// Run executes the docs command.
func (c *DocsCmd) Run(deps *Dependencies) error {
	if c.URL != "" {
		return c.show(deps)
	}

	docs, err := deps.Documents.FindDocuments(deps.Ctx, websearch.DocumentFilter{
		Query:  c.Query,
		Offset: c.Offset,
		Limit:  c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", websearch.ErrorMessage(err))
		return err
	}

	if len(docs) == 0 {
		if c.Query != "" {
			fmt.Fprintf(deps.Stdout, "No documents match %q.\n", c.Query)
		} else {
			fmt.Fprintln(deps.Stdout, "No documents indexed yet. Run 'websearch crawl <url>' to add some.")
		}
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Documents (%d shown):\n\n", len(docs))
	for i, doc := range docs {
		title := doc.Title
		if title == "" {
			title = doc.URL
		}
		fmt.Fprintf(deps.Stdout, "  %d. %s\n     %s (%s, %s)\n",
			c.Offset+i+1, title, doc.URL,
			crawl.FormatSize(len(doc.Content)), doc.IndexedAt.Format("2006-01-02"))
	}

	return nil
}

// show prints a single document in full.
func (c *DocsCmd) show(deps *Dependencies) error {
	doc, err := deps.Documents.FindDocumentByURL(deps.Ctx, c.URL)
	if err != nil {
		if websearch.ErrorCode(err) == websearch.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: document %q not found. Use 'websearch docs' to see indexed documents.\n", c.URL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", websearch.ErrorMessage(err))
		}
		return err
	}

	if doc.Title != "" {
		fmt.Fprintf(deps.Stdout, "# %s\n\n", doc.Title)
	}
	fmt.Fprintf(deps.Stdout, "Source: %s\n", doc.URL)
	if doc.Description != "" {
		fmt.Fprintf(deps.Stdout, "Description: %s\n", doc.Description)
	}
	fmt.Fprintf(deps.Stdout, "Indexed: %s\n\n", doc.IndexedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintln(deps.Stdout, doc.Content)
	return nil
}
