// Package websearch provides a crawler that discovers pages reachable from a
// set of seed addresses, filters them through a staged constraint pipeline,
// and forwards accepted pages to a search index.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, whatwg/).
package websearch
