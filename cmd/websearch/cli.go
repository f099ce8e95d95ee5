package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Documents websearch.DocumentService

	// Fetcher replaces the HTTP fetcher when set.
	Fetcher websearch.Fetcher
}

// logger returns the configured logger, or one that discards output.
func (d *Dependencies) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return d.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `name:"log-level" env:"WEBSEARCH_LOG_LEVEL" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`
	LogFile  string `name:"log-file" help:"Also write logs to this file, rotated at 10 MiB"`

	Crawl CrawlCmd `cmd:"" help:"Crawl from seed URLs and index the pages found"`
	Docs  DocsCmd  `cmd:"" help:"List indexed documents"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds []string `arg:"" name:"seed" help:"Seed URLs"`

	Order         string        `default:"dfs" enum:"bfs,dfs" help:"Traversal order (bfs or dfs)"`
	MaxIterations int           `short:"n" name:"max-iterations" default:"1000" help:"Maximum number of addresses to process"`
	Timeout       time.Duration `default:"5s" help:"Per-request timeout"`
	MaxFrontier   int           `name:"max-frontier" default:"100000" help:"Maximum number of queued addresses"`
	UserAgent     string        `name:"user-agent" help:"User-Agent header sent with requests"`

	SameDomain bool          `name:"same-domain" help:"Only follow links within the seeds' registrable domains"`
	SameHost   bool          `name:"same-host" help:"Only follow links on the seeds' hosts"`
	Extensions []string      `help:"Allowed path extensions (default: common HTML extensions)"`
	Include    []string      `short:"I" help:"Only fetch URLs matching regex (repeatable)"`
	Exclude    []string      `short:"X" help:"Skip URLs matching regex (repeatable)"`
	Recency    time.Duration `default:"24h" help:"Skip pages indexed within this window (0 disables)"`
	StripQuery bool          `name:"strip-query" help:"Drop query strings when normalizing addresses"`
	Rate       float64       `default:"1" help:"Requests per second per host (0 disables)"`

	Extractor string `default:"trafilatura" enum:"trafilatura,readability,raw" help:"Content extractor (trafilatura, readability, raw)"`
	Sitemap   bool   `help:"Also seed from the sitemaps of each seed"`
	Out       string `help:"Write Markdown files to this directory instead of the database"`
	Batch     int    `default:"100" help:"Documents buffered before writing to the database"`
}

// DocsCmd is the "docs" subcommand.
type DocsCmd struct {
	URL    string `arg:"" optional:"" help:"Show the full content of the document with this URL"`
	Query  string `short:"q" help:"Only show documents whose URL or title contains this text"`
	Limit  int    `short:"l" default:"20" help:"Maximum number of documents to show (0 for all)"`
	Offset int    `help:"Number of documents to skip"`
}
