package constraint

import (
	"context"
	"net"
	"net/url"
	"sort"
	"strings"

	"github.com/fwojciec/websearch"
	"golang.org/x/net/publicsuffix"
)

var (
	_ websearch.URLConstraint = (*SameDomain)(nil)
	_ websearch.SeedAware     = (*SameDomain)(nil)
)

// SameDomain restricts the crawl to the registrable domains (eTLD+1) of the
// seed addresses plus any domains given explicitly. Subdomains of an allowed
// domain are accepted: a seed on docs.example.com admits blog.example.com.
type SameDomain struct {
	domains map[string]struct{}
}

// NewSameDomain creates a SameDomain constraint that also admits the given domains.
func NewSameDomain(domains ...string) *SameDomain {
	c := &SameDomain{domains: make(map[string]struct{})}
	for _, d := range domains {
		c.domains[registrableDomain(strings.ToLower(d))] = struct{}{}
	}
	return c
}

// Name returns the constraint's identifier.
func (c *SameDomain) Name() string {
	return "same-domain(" + strings.Join(c.Domains(), ",") + ")"
}

// SetSeeds adds the registrable domain of every seed to the allowed set.
func (c *SameDomain) SetSeeds(seeds []string) error {
	if c.domains == nil {
		c.domains = make(map[string]struct{})
	}
	for _, seed := range seeds {
		host, err := hostname(seed)
		if err != nil {
			return websearch.Errorf(websearch.EINVALID, "same-domain: invalid seed %q: %v", seed, err)
		}
		c.domains[registrableDomain(host)] = struct{}{}
	}
	return nil
}

// Domains returns the allowed registrable domains, sorted.
func (c *SameDomain) Domains() []string {
	out := make([]string, 0, len(c.domains))
	for d := range c.domains {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// AllowURL reports whether the address belongs to an allowed domain.
func (c *SameDomain) AllowURL(_ context.Context, rawURL string) bool {
	host, err := hostname(rawURL)
	if err != nil {
		return false
	}
	_, ok := c.domains[registrableDomain(host)]
	return ok
}

var (
	_ websearch.URLConstraint = (*SameHost)(nil)
	_ websearch.SeedAware     = (*SameHost)(nil)
)

// SameHost restricts the crawl to the exact hostnames of the seed addresses.
type SameHost struct {
	hosts map[string]struct{}
}

// NewSameHost creates a SameHost constraint.
func NewSameHost() *SameHost {
	return &SameHost{hosts: make(map[string]struct{})}
}

// Name returns the constraint's identifier.
func (c *SameHost) Name() string {
	return "same-host"
}

// SetSeeds records the hostname of every seed.
func (c *SameHost) SetSeeds(seeds []string) error {
	if c.hosts == nil {
		c.hosts = make(map[string]struct{})
	}
	for _, seed := range seeds {
		host, err := hostname(seed)
		if err != nil {
			return websearch.Errorf(websearch.EINVALID, "same-host: invalid seed %q: %v", seed, err)
		}
		c.hosts[host] = struct{}{}
	}
	return nil
}

// AllowURL reports whether the address is on a seed host.
func (c *SameHost) AllowURL(_ context.Context, rawURL string) bool {
	host, err := hostname(rawURL)
	if err != nil {
		return false
	}
	_, ok := c.hosts[host]
	return ok
}

// hostname returns the lowercased host of an absolute address, without port.
func hostname(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return "", websearch.Errorf(websearch.EINVALID, "missing host")
	}
	return host, nil
}

// registrableDomain returns the eTLD+1 of host. IP addresses and hosts
// without a public suffix (localhost) are returned unchanged.
func registrableDomain(host string) string {
	if net.ParseIP(host) != nil {
		return host
	}
	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return domain
}
