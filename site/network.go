// This file implements the Network orchestrator: site creation, peer
// registration, the start broadcast, quiescence tracking, and
// shutdown.
package site

import (
	"sync"

	"github.com/rs/zerolog"
)

// Network owns every site of a run. The orchestrator thread creates
// the sites, wires their peer sets, broadcasts Start strictly after
// all registrations were delivered, and finally shuts the mailboxes
// down once it has determined quiescence.
type Network struct {
	mu    sync.Mutex
	sites []*Site

	running  sync.WaitGroup
	workload sync.WaitGroup

	quiesced chan struct{}
	once     sync.Once
}

// NewNetwork returns an empty Network.
func NewNetwork() *Network {
	return &Network{quiesced: make(chan struct{})}
}

// NewSite creates a site with the next sequence number and adds it to
// the network. The sequence assigns the run's total identity order.
func (n *Network) NewSite(name string, instructions []Instruction, logger zerolog.Logger) *Site {
	n.mu.Lock()
	defer n.mu.Unlock()
	s := New(ID{Name: name, Seq: len(n.sites)}, instructions, logger)
	n.sites = append(n.sites, s)
	n.workload.Add(1)

	return s
}

// Sites returns the sites in creation order.
func (n *Network) Sites() []*Site {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]*Site, len(n.sites))
	copy(out, n.sites)

	return out
}

// Connect registers every site with every other (full mesh).
// Registrations travel through the mailboxes so each site applies them
// before its Start, which the same sender enqueues afterwards.
func (n *Network) Connect() {
	sites := n.Sites()
	for _, s := range sites {
		for _, other := range sites {
			if other == s {
				continue
			}
			s.Mailbox().Send(RegisterPeer{ID: other.ID(), Mailbox: other.Mailbox()})
		}
	}
}

// Register delivers a single peer registration to s.
func (n *Network) Register(s *Site, peer *Site) {
	s.Mailbox().Send(RegisterPeer{ID: peer.ID(), Mailbox: peer.Mailbox()})
}

// Start broadcasts the start signal. Per-pair FIFO ordering guarantees
// every site sees its registrations first.
func (n *Network) Start() {
	for _, s := range n.Sites() {
		s.Mailbox().Send(Start{})
	}
}

// Go runs fn on its own goroutine and tracks it for Shutdown.
func (n *Network) Go(fn func()) {
	n.running.Add(1)
	go func() {
		defer n.running.Done()
		fn()
	}()
}

// WorkloadDone records that one site has exhausted its instruction
// list. Sites call it exactly once, on entering their drain state.
func (n *Network) WorkloadDone() {
	n.workload.Done()
}

// Quiesced returns a channel closed once every site has reported
// workload completion. Sites blocked forever (a deliberate deadlock
// scenario) keep the channel open.
func (n *Network) Quiesced() <-chan struct{} {
	n.once.Do(func() {
		go func() {
			n.workload.Wait()
			close(n.quiesced)
		}()
	})

	return n.quiesced
}

// AwaitQuiescence blocks until every site finished its workload.
func (n *Network) AwaitQuiescence() {
	<-n.Quiesced()
}

// Shutdown closes every mailbox, releasing draining sites, and waits
// for all tracked goroutines to return.
func (n *Network) Shutdown() {
	for _, s := range n.Sites() {
		s.Mailbox().Close()
	}
	n.running.Wait()
}
