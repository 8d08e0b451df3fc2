// This file declares the two protocol messages.
package ricart

import "github.com/katalvlaran/distsim/site"

// Request asks every peer for permission to enter the critical
// section. T is the sender's clock snapshot taken when the request was
// issued; together with the sender identity it orders contenders.
type Request struct {
	From site.ID
	T    uint64
}

// Reply grants the sender's outstanding request. T carries the
// replier's clock for witnessing.
type Reply struct {
	From site.ID
	T    uint64
}
