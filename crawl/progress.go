package crawl

import "github.com/fwojciec/websearch"

// Result holds the outcome of a crawl run.
type Result struct {
	// Iterations is the number of addresses popped from the frontier.
	Iterations int

	// Visited is the number of addresses whose response passed the
	// response constraints and whose links were followed.
	Visited int

	// Fetched counts completed fetches, whatever their status code.
	Fetched int

	// Indexed counts documents added to the index.
	Indexed int

	// Failed counts transport, extraction and indexing failures.
	Failed int

	// Skipped counts popped addresses that had already been processed.
	Skipped int

	// Rejected counts constraint rejections per stage.
	Rejected map[websearch.Stage]int

	// Dropped counts links discarded because the frontier was full.
	Dropped int

	// Discovered estimates the number of distinct addresses ever queued.
	Discovered int

	// Remaining is the frontier size when the run ended.
	Remaining int

	// Canceled is true if the run stopped because its context was canceled.
	Canceled bool
}

// TotalRejected returns the number of constraint rejections across stages.
func (r *Result) TotalRejected() int {
	n := 0
	for _, count := range r.Rejected {
		n += count
	}
	return n
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type       ProgressType
	Iteration  int
	URL        string
	Stage      websearch.Stage
	Constraint string
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressFetched
	ProgressRejected
	ProgressFailed
	ProgressIndexed
	ProgressFinished
)

// String returns a short name for the event type.
func (t ProgressType) String() string {
	switch t {
	case ProgressStarted:
		return "started"
	case ProgressFetched:
		return "fetched"
	case ProgressRejected:
		return "rejected"
	case ProgressFailed:
		return "failed"
	case ProgressIndexed:
		return "indexed"
	case ProgressFinished:
		return "finished"
	}
	return "unknown"
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)
