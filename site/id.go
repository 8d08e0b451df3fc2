// This file declares the site identity type and its total order.
package site

import "strconv"

// ID identifies a site within a run. Name is the scenario-given label;
// Seq is the insertion sequence assigned by the Network at creation.
//
// Seq alone defines the total order used for tie-breaking, so the
// order is explicit, stable for the whole run, and portable - it never
// depends on runtime handles. ID is comparable and usable as a map key.
type ID struct {
	Name string
	Seq  int
}

// Less reports whether id precedes other in the run's total order.
func (id ID) Less(other ID) bool { return id.Seq < other.Seq }

// String returns the scenario name, or a synthetic label for unnamed sites.
func (id ID) String() string {
	if id.Name != "" {
		return id.Name
	}

	return "site-" + strconv.Itoa(id.Seq)
}
