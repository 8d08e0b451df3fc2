// This file implements the Site: identity, mailbox, peer registry,
// workload consumption, and the pre-start handshake.
package site

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ErrUnknownPeer indicates a send targeted an identity with no
// registered mailbox. Per the runtime contract this is a programmer
// error: the site aborts its run with a diagnostic naming the
// foreign identifier.
var ErrUnknownPeer = errors.New("site: message target is not a registered peer")

// Site is one logical site of the simulation. All fields except the
// peer registry are owned by the site's goroutine; peers is guarded
// because registrations may arrive from the orchestrator thread.
type Site struct {
	id      ID
	mailbox *Mailbox
	log     zerolog.Logger

	peerMu sync.RWMutex
	peers  map[ID]*Mailbox

	// stash holds algorithm messages that arrived before Start; they
	// are re-delivered, in order, ahead of fresh mailbox traffic.
	stash []Message

	instructions []Instruction
}

// New creates a Site with the given identity, workload, and logger.
// Prefer Network.NewSite, which assigns the sequence number.
func New(id ID, instructions []Instruction, logger zerolog.Logger) *Site {
	return &Site{
		id:           id,
		mailbox:      NewMailbox(),
		log:          logger.With().Stringer("site", id).Logger(),
		peers:        make(map[ID]*Mailbox),
		instructions: instructions,
	}
}

// ID returns the site identity.
func (s *Site) ID() ID { return s.id }

// Mailbox returns the site's inbound mailbox handle.
func (s *Site) Mailbox() *Mailbox { return s.mailbox }

// Log returns the site-scoped logger.
func (s *Site) Log() *zerolog.Logger { return &s.log }

// RegisterPeer records an outbound handle to another site. Idempotent.
func (s *Site) RegisterPeer(id ID, mb *Mailbox) {
	s.peerMu.Lock()
	defer s.peerMu.Unlock()
	if _, ok := s.peers[id]; ok {
		return
	}
	s.peers[id] = mb
}

// Peer returns the outbound handle registered for id.
func (s *Site) Peer(id ID) (*Mailbox, bool) {
	s.peerMu.RLock()
	defer s.peerMu.RUnlock()
	mb, ok := s.peers[id]

	return mb, ok
}

// Peers returns all registered peer identities ordered by sequence.
func (s *Site) Peers() []ID {
	s.peerMu.RLock()
	out := make([]ID, 0, len(s.peers))
	for id := range s.peers {
		out = append(out, id)
	}
	s.peerMu.RUnlock()
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Less(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}

	return out
}

// Send enqueues msg to the target's inbound mailbox. Non-blocking.
// Returns ErrUnknownPeer if target was never registered.
func (s *Site) Send(target ID, msg Message) error {
	mb, ok := s.Peer(target)
	if !ok {
		return fmt.Errorf("%w: %v -> %v", ErrUnknownPeer, s.id, target)
	}
	mb.Send(msg)

	return nil
}

// AwaitStart consumes the mailbox until the Start signal. Peer
// registrations are applied; any algorithm message that raced ahead of
// Start is stashed and re-delivered by Recv afterwards, so no traffic
// is lost in the handshake. ok is false if the mailbox closed first.
func (s *Site) AwaitStart() (ok bool) {
	for {
		msg, alive := s.mailbox.Recv()
		if !alive {
			return false
		}
		switch m := msg.(type) {
		case RegisterPeer:
			s.RegisterPeer(m.ID, m.Mailbox)
		case Start:
			s.log.Debug().Msg("initialized")

			return true
		default:
			s.stash = append(s.stash, msg)
		}
	}
}

// Recv returns the next inbound message, draining the pre-start stash
// first. Late peer registrations are applied transparently, so
// algorithm loops never see topology traffic. ok is false once the
// mailbox is closed and drained.
func (s *Site) Recv() (Message, bool) {
	for {
		var msg Message
		var ok bool
		if len(s.stash) > 0 {
			msg, ok = s.stash[0], true
			s.stash = s.stash[1:]
		} else if msg, ok = s.mailbox.Recv(); !ok {
			return nil, false
		}
		if reg, isReg := msg.(RegisterPeer); isReg {
			s.RegisterPeer(reg.ID, reg.Mailbox)

			continue
		}

		return msg, ok
	}
}

// TryRecv is the non-blocking variant of Recv, used to service inbound
// traffic at instruction boundaries.
func (s *Site) TryRecv() (Message, bool) {
	for {
		var msg Message
		var ok bool
		if len(s.stash) > 0 {
			msg, ok = s.stash[0], true
			s.stash = s.stash[1:]
		} else if msg, ok = s.mailbox.TryRecv(); !ok {
			return nil, false
		}
		if reg, isReg := msg.(RegisterPeer); isReg {
			s.RegisterPeer(reg.ID, reg.Mailbox)

			continue
		}

		return msg, ok
	}
}

// NextInstruction pops the head of the workload.
// ok is false once the list is exhausted - the site is then expected
// to enter its drain state.
func (s *Site) NextInstruction() (ins Instruction, ok bool) {
	if len(s.instructions) == 0 {
		return Instruction{}, false
	}
	ins = s.instructions[0]
	s.instructions = s.instructions[1:]

	return ins, true
}

// Done reports whether the workload is exhausted.
func (s *Site) Done() bool { return len(s.instructions) == 0 }
