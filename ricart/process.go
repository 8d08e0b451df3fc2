// This file implements the per-site protocol loop.
package ricart

import (
	"fmt"
	"time"

	"github.com/katalvlaran/distsim/site"
)

// Option configures optional behavior of a Process.
type Option func(*Options)

// Options holds Process hooks, used by tests and diagnostics.
type Options struct {
	// OnEnter, if non-nil, is invoked at the moment the site enters the
	// critical section, with the request stamp that won it.
	OnEnter func(id site.ID, stamp uint64)

	// OnExit, if non-nil, is invoked when the site leaves the critical
	// section.
	OnExit func(id site.ID)
}

// WithOnEnter installs fn as the CS-entry hook.
func WithOnEnter(fn func(id site.ID, stamp uint64)) Option {
	return func(o *Options) { o.OnEnter = fn }
}

// WithOnExit installs fn as the CS-exit hook.
func WithOnExit(fn func(id site.ID)) Option {
	return func(o *Options) { o.OnExit = fn }
}

// Process is one site running the Ricart-Agrawala protocol. All state
// is owned by the site's goroutine.
type Process struct {
	site *site.Site
	net  *site.Network
	opts Options

	clock      Clock
	approved   map[site.ID]bool
	deferred   []site.ID
	requesting bool
	requestT   uint64
}

// NewProcess wraps s into a protocol process on net.
func NewProcess(net *site.Network, s *site.Site, opts ...Option) *Process {
	p := &Process{
		site:     s,
		net:      net,
		approved: make(map[site.ID]bool),
	}
	for _, fn := range opts {
		fn(&p.opts)
	}

	return p
}

// Site returns the underlying runtime site.
func (p *Process) Site() *site.Site { return p.site }

// Run executes the site's workload: alternate instruction consumption
// with the CS entry protocol, then drain until shutdown. It reports
// workload completion to the network exactly once, even on error.
func (p *Process) Run() error {
	done := false
	markDone := func() {
		if !done {
			done = true
			p.net.WorkloadDone()
		}
	}
	defer markDone()

	if !p.site.AwaitStart() {
		return nil
	}
	for {
		ins, ok := p.site.NextInstruction()
		if !ok {
			break
		}
		switch ins.Kind {
		case site.KindIdle:
			p.site.Log().Info().Dur("for", ins.Duration).Msg("idle")
			time.Sleep(ins.Duration)
			p.clock.Tick()
		case site.KindCritical:
			if err := p.enter(ins.Duration); err != nil {
				return err
			}
		}
		// Service traffic that piled up during the instruction.
		if err := p.poll(); err != nil {
			return err
		}
	}

	p.site.Log().Info().Msg("workload finished, draining")
	markDone()
	p.drain()

	return nil
}

// enter runs the request protocol, holds the critical section for d,
// and releases the deferred peers on exit.
func (p *Process) enter(d time.Duration) error {
	// 1. Stamp and broadcast the request
	p.requestT = p.clock.Tick()
	p.requesting = true
	clear(p.approved)
	peers := p.site.Peers()
	for _, peer := range peers {
		if err := p.send(peer, Request{From: p.site.ID(), T: p.requestT}); err != nil {
			return err
		}
	}
	p.site.Log().Debug().Uint64("stamp", p.requestT).Msg("requested critical section")

	// 2. Receive until every peer has approved
	for !p.allApproved(peers) {
		msg, ok := p.site.Recv()
		if !ok {
			return nil // shutdown while waiting
		}
		if err := p.dispatch(msg); err != nil {
			return err
		}
	}

	// 3. Critical section
	p.site.Log().Info().Uint64("stamp", p.requestT).Msg("entering critical section")
	if p.opts.OnEnter != nil {
		p.opts.OnEnter(p.site.ID(), p.requestT)
	}
	time.Sleep(d)
	p.clock.Tick()
	if p.opts.OnExit != nil {
		p.opts.OnExit(p.site.ID())
	}
	p.site.Log().Info().Msg("exiting critical section")

	// 4. Release: answer every deferred request
	p.requesting = false
	now := p.clock.Now()
	for _, j := range p.deferred {
		if err := p.send(j, Reply{From: p.site.ID(), T: now}); err != nil {
			return err
		}
	}
	p.deferred = p.deferred[:0]

	return nil
}

// dispatch applies one inbound message to the protocol state.
func (p *Process) dispatch(msg site.Message) error {
	switch m := msg.(type) {
	case Request:
		p.clock.Witness(m.T)
		if !p.requesting || precedes(m.T, m.From, p.requestT, p.site.ID()) {
			return p.send(m.From, Reply{From: p.site.ID(), T: p.clock.Now()})
		}
		p.deferred = append(p.deferred, m.From)
		p.site.Log().Debug().Stringer("from", m.From).Msg("deferred request")
	case Reply:
		p.clock.Witness(m.T)
		p.approved[m.From] = true
	default:
		return fmt.Errorf("ricart: site %v: unexpected message %T", p.site.ID(), msg)
	}

	return nil
}

// poll services inbound traffic without blocking.
func (p *Process) poll() error {
	for {
		msg, ok := p.site.TryRecv()
		if !ok {
			return nil
		}
		if err := p.dispatch(msg); err != nil {
			return err
		}
	}
}

// drain keeps answering requests after the workload is exhausted; the
// site can never contend again, so every request is approved
// immediately. Returns when the orchestrator closes the mailbox.
func (p *Process) drain() {
	for {
		msg, ok := p.site.Recv()
		if !ok {
			return
		}
		switch m := msg.(type) {
		case Request:
			p.clock.Witness(m.T)
			// Best effort: a drained site never defers.
			_ = p.send(m.From, Reply{From: p.site.ID(), T: p.clock.Now()})
		case Reply:
			p.clock.Witness(m.T)
		}
	}
}

// allApproved reports whether every peer has granted the request.
func (p *Process) allApproved(peers []site.ID) bool {
	for _, peer := range peers {
		if !p.approved[peer] {
			return false
		}
	}

	return true
}

// send wraps Site.Send with protocol context.
func (p *Process) send(target site.ID, msg site.Message) error {
	if err := p.site.Send(target, msg); err != nil {
		return fmt.Errorf("ricart: %w", err)
	}

	return nil
}

// precedes reports whether request (t1, id1) is ordered before
// (t2, id2) under the lexicographic (timestamp, identity) order.
func precedes(t1 uint64, id1 site.ID, t2 uint64, id2 site.ID) bool {
	if t1 != t2 {
		return t1 < t2
	}

	return id1.Less(id2)
}

// RunAll connects the processes' network as a full mesh, starts every
// process, waits for workload quiescence, and shuts the network down.
// The first process error, if any, is returned.
func RunAll(net *site.Network, procs []*Process) error {
	net.Connect()
	net.Start()
	errs := make(chan error, len(procs))
	for _, p := range procs {
		p := p
		net.Go(func() {
			if err := p.Run(); err != nil {
				p.site.Log().Error().Err(err).Msg("site aborted")
				errs <- err
			}
		})
	}
	net.AwaitQuiescence()
	net.Shutdown()
	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}
