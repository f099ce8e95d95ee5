package crawl

import (
	"context"

	"github.com/fwojciec/websearch"
	"github.com/fwojciec/websearch/constraint"
)

// Pipeline holds the three ordered constraint chains a page passes through:
// address checks before fetching, response checks after fetching, and
// address checks before information extraction.
type Pipeline struct {
	fetch      []websearch.URLConstraint
	response   []websearch.ResponseConstraint
	extraction []websearch.URLConstraint
}

// NewPipeline builds a Pipeline from a constraint set, performing the one-time
// setup pass: seed-aware constraints receive seeds and lookup-aware
// constraints receive lookup. A constraint that cannot serve its stage, a
// failed seed setup, or a lookup-aware constraint without a lookup is an
// EINVALID error.
func NewPipeline(set *constraint.Set, seeds []string, lookup websearch.VisitLookup) (*Pipeline, error) {
	if set == nil {
		set = constraint.Defaults()
	}

	p := &Pipeline{}
	var err error
	if p.fetch, err = urlChain(websearch.StageFetch, set.Fetch, seeds, lookup); err != nil {
		return nil, err
	}
	if p.response, err = responseChain(set.Response, seeds, lookup); err != nil {
		return nil, err
	}
	if p.extraction, err = urlChain(websearch.StageExtraction, set.Extraction, seeds, lookup); err != nil {
		return nil, err
	}
	return p, nil
}

func urlChain(stage websearch.Stage, cs []websearch.Constraint, seeds []string, lookup websearch.VisitLookup) ([]websearch.URLConstraint, error) {
	chain := make([]websearch.URLConstraint, 0, len(cs))
	for i, c := range cs {
		uc, ok := c.(websearch.URLConstraint)
		if !ok {
			return nil, stageError(stage, i, c, "does not evaluate addresses")
		}
		if err := configure(stage, i, c, seeds, lookup); err != nil {
			return nil, err
		}
		chain = append(chain, uc)
	}
	return chain, nil
}

func responseChain(cs []websearch.Constraint, seeds []string, lookup websearch.VisitLookup) ([]websearch.ResponseConstraint, error) {
	chain := make([]websearch.ResponseConstraint, 0, len(cs))
	for i, c := range cs {
		rc, ok := c.(websearch.ResponseConstraint)
		if !ok {
			return nil, stageError(websearch.StageResponse, i, c, "does not evaluate responses")
		}
		if err := configure(websearch.StageResponse, i, c, seeds, lookup); err != nil {
			return nil, err
		}
		chain = append(chain, rc)
	}
	return chain, nil
}

// configure runs the setup hooks a constraint implements.
func configure(stage websearch.Stage, i int, c websearch.Constraint, seeds []string, lookup websearch.VisitLookup) error {
	if sa, ok := c.(websearch.SeedAware); ok {
		if err := sa.SetSeeds(seeds); err != nil {
			return stageError(stage, i, c, websearch.ErrorMessage(err))
		}
	}
	if la, ok := c.(websearch.LookupAware); ok {
		if lookup == nil {
			return stageError(stage, i, c, "requires an index that supports last-visited lookups")
		}
		la.SetLookup(lookup)
	}
	return nil
}

func stageError(stage websearch.Stage, i int, c websearch.Constraint, reason string) error {
	name := "<nil>"
	if c != nil {
		name = c.Name()
	}
	return websearch.Errorf(websearch.EINVALID, "%s constraint #%d (%s) %s", stage, i, name, reason)
}

// AllowFetch evaluates the pre-fetch chain on an address.
// Returns the name of the first rejecting constraint when not allowed.
func (p *Pipeline) AllowFetch(ctx context.Context, url string) (bool, string) {
	return allowURL(ctx, p.fetch, url)
}

// AllowResponse evaluates the post-fetch chain on a response.
// Returns the name of the first rejecting constraint when not allowed.
func (p *Pipeline) AllowResponse(ctx context.Context, res *websearch.FetchResult) (bool, string) {
	for _, c := range p.response {
		if !c.AllowResponse(ctx, res) {
			return false, c.Name()
		}
	}
	return true, ""
}

// AllowExtraction evaluates the pre-extraction chain on an address.
// Returns the name of the first rejecting constraint when not allowed.
func (p *Pipeline) AllowExtraction(ctx context.Context, url string) (bool, string) {
	return allowURL(ctx, p.extraction, url)
}

func allowURL(ctx context.Context, chain []websearch.URLConstraint, url string) (bool, string) {
	for _, c := range chain {
		if !c.AllowURL(ctx, url) {
			return false, c.Name()
		}
	}
	return true, ""
}
