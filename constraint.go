package websearch

import "context"

// Stage identifies one of the three constraint chains.
type Stage string

// Pipeline stages, in the order a page passes through them.
const (
	StageFetch      Stage = "fetch"
	StageResponse   Stage = "response"
	StageExtraction Stage = "extraction"
)

// Constraint is a named rule gating whether an address or response proceeds
// to the next stage. A concrete constraint also implements URLConstraint or
// ResponseConstraint; which one decides the stages it may be used in.
type Constraint interface {
	Name() string
}

// URLConstraint is evaluated against a candidate address.
// Used by the fetch and extraction stages.
type URLConstraint interface {
	Constraint
	AllowURL(ctx context.Context, url string) bool
}

// ResponseConstraint is evaluated against a fetched response.
// Used by the response stage.
type ResponseConstraint interface {
	Constraint
	AllowResponse(ctx context.Context, res *FetchResult) bool
}

// SeedAware is implemented by constraints that must learn the run's seed
// addresses before first use.
type SeedAware interface {
	SetSeeds(seeds []string) error
}

// LookupAware is implemented by constraints that consult the index for
// when an address was last visited.
type LookupAware interface {
	SetLookup(lookup VisitLookup)
}
