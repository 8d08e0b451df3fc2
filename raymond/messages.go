// This file declares the two protocol messages.
package raymond

import "github.com/katalvlaran/distsim/site"

// Request travels one tree edge toward the root. From names the
// forwarding site (not necessarily the originator); ReplyTo is the
// handle the token must take to move toward the originator.
type Request struct {
	From    site.ID
	ReplyTo *site.Mailbox
}

// Token is the unique permission object. Its holder is the current
// root and is authorized to enter the critical section.
type Token struct{}
