// This file implements the per-site token-tree loop.
package raymond

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/distsim/site"
)

// ErrTreeInvariant indicates the token arrived at a site that already
// is the root - a re-root through a non-root parent. It is an
// implementation bug, never a scenario error.
var ErrTreeInvariant = errors.New("raymond: token received by the current root")

// Option configures optional behavior of a Process.
type Option func(*Options)

// Options holds Process hooks, used by tests and diagnostics.
type Options struct {
	// OnEnter, if non-nil, is invoked on critical-section entry.
	OnEnter func(id site.ID)

	// OnExit, if non-nil, is invoked on critical-section exit.
	OnExit func(id site.ID)
}

// WithOnEnter installs fn as the CS-entry hook.
func WithOnEnter(fn func(id site.ID)) Option {
	return func(o *Options) { o.OnEnter = fn }
}

// WithOnExit installs fn as the CS-exit hook.
func WithOnExit(fn func(id site.ID)) Option {
	return func(o *Options) { o.OnExit = fn }
}

// pending is one queued request: the site it came from (this site for
// an own request, otherwise the neighbor that forwarded it) and the
// handle the token must take toward that site.
type pending struct {
	origin  site.ID
	replyTo *site.Mailbox
}

// Process is one site of the token tree. All state is owned by the
// site's goroutine; the parent pointer is written only there, which
// makes re-rooting atomic with the token transfer.
type Process struct {
	site *site.Site
	net  *site.Network
	opts Options

	parent          *site.Mailbox // nil iff this site is the root
	holder          bool          // true iff the token is here
	queue           []pending
	upstreamPending bool
	csDuration      time.Duration // duration of the own pending CS
}

// NewProcess wraps s into a tree process. parent is the initial
// upstream handle; the single site constructed with a nil parent is
// the initial root and starts holding the token.
func NewProcess(net *site.Network, s *site.Site, parent *site.Mailbox, opts ...Option) *Process {
	p := &Process{
		site:   s,
		net:    net,
		parent: parent,
		holder: parent == nil,
	}
	for _, fn := range opts {
		fn(&p.opts)
	}

	return p
}

// Site returns the underlying runtime site.
func (p *Process) Site() *site.Site { return p.site }

// Root reports whether this site currently is the tree root.
// Meaningful once the site's goroutine has stopped (after Shutdown).
func (p *Process) Root() bool { return p.parent == nil }

// Holder reports whether the token currently resides here.
// Meaningful once the site's goroutine has stopped (after Shutdown).
func (p *Process) Holder() bool { return p.holder }

// Parent returns the current upstream handle (nil at the root).
// Meaningful once the site's goroutine has stopped (after Shutdown).
func (p *Process) Parent() *site.Mailbox { return p.parent }

// Run executes the site's workload, then drains until shutdown.
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
	if p.holder {
		p.site.Log().Info().Msg("starting root")
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
		case site.KindCritical:
			if err := p.acquire(ins.Duration); err != nil {
				return err
			}
		}
		// Service requests that piled up during the instruction.
		if err := p.poll(); err != nil {
			return err
		}
	}

	p.site.Log().Info().Msg("workload finished, draining")
	markDone()

	return p.drain()
}

// acquire queues an own request and runs the dispatch loop until the
// critical section has been executed.
func (p *Process) acquire(d time.Duration) error {
	p.csDuration = d
	p.queue = append(p.queue, pending{origin: p.site.ID(), replyTo: p.site.Mailbox()})
	p.maybeRequestUpstream()
	for {
		if p.holder {
			executed, err := p.serviceQueue()
			if err != nil {
				return err
			}
			if executed {
				return nil
			}
		}
		msg, ok := p.site.Recv()
		if !ok {
			return nil // shutdown while waiting
		}
		if err := p.dispatch(msg); err != nil {
			return err
		}
	}
}

// serviceQueue serves queued requests while the token is here:
// a self-request executes the critical section locally; any other
// request transfers the token (and the root role) toward its origin.
func (p *Process) serviceQueue() (executedCS bool, err error) {
	for p.holder && len(p.queue) > 0 {
		head := p.queue[0]
		p.queue = p.queue[1:]

		// Self-request by the current root: execute locally, send nothing.
		if head.origin == p.site.ID() {
			p.site.Log().Info().Msg("entering critical section")
			if p.opts.OnEnter != nil {
				p.opts.OnEnter(p.site.ID())
			}
			time.Sleep(p.csDuration)
			if p.opts.OnExit != nil {
				p.opts.OnExit(p.site.ID())
			}
			p.site.Log().Info().Msg("exiting critical section")
			executedCS = true

			continue
		}

		// Re-root atomically with the transfer: the new parent pointer
		// is installed before the token is emitted.
		p.holder = false
		p.parent = head.replyTo
		head.replyTo.Send(Token{})
		p.site.Log().Info().Stringer("toward", head.origin).Msg("passed token")

		// Anything still queued needs the token back.
		p.maybeRequestUpstream()
	}

	return executedCS, nil
}

// dispatch applies one inbound message to the protocol state. The
// caller is responsible for servicing the queue when the token is
// present.
func (p *Process) dispatch(msg site.Message) error {
	switch m := msg.(type) {
	case Request:
		p.site.Log().Debug().Stringer("from", m.From).Msg("received request")
		p.queue = append(p.queue, pending{origin: m.From, replyTo: m.ReplyTo})
		p.maybeRequestUpstream()
	case Token:
		if p.parent == nil {
			return fmt.Errorf("%w: site %v", ErrTreeInvariant, p.site.ID())
		}
		// First action on accepting the token: become the root.
		p.parent = nil
		p.holder = true
		p.upstreamPending = false
		p.site.Log().Info().Msg("received token, now root")
	default:
		return fmt.Errorf("raymond: site %v: unexpected message %T", p.site.ID(), msg)
	}

	return nil
}

// maybeRequestUpstream forwards a request toward the parent unless the
// site holds the token, has nothing queued, or already has one
// outstanding.
func (p *Process) maybeRequestUpstream() {
	if p.holder || p.upstreamPending || len(p.queue) == 0 {
		return
	}
	p.parent.Send(Request{From: p.site.ID(), ReplyTo: p.site.Mailbox()})
	p.upstreamPending = true
	p.site.Log().Debug().Msg("forwarded request upstream")
}

// poll services inbound traffic without blocking, passing the token on
// if it is (or becomes) present. Own requests are never queued here,
// so no critical section can execute.
func (p *Process) poll() error {
	for {
		msg, ok := p.site.TryRecv()
		if !ok {
			break
		}
		if err := p.dispatch(msg); err != nil {
			return err
		}
	}
	if p.holder {
		if _, err := p.serviceQueue(); err != nil {
			return err
		}
	}

	return nil
}

// drain keeps forwarding requests and the token after the workload is
// exhausted, so live peers retain liveness. Returns when the
// orchestrator closes the mailbox.
func (p *Process) drain() error {
	for {
		msg, ok := p.site.Recv()
		if !ok {
			return nil
		}
		if err := p.dispatch(msg); err != nil {
			return err
		}
		if p.holder {
			if _, err := p.serviceQueue(); err != nil {
				return err
			}
		}
	}
}

// RunAll starts every process on an already wired tree, waits for
// workload quiescence, and shuts the network down. The first process
// error, if any, is returned.
func RunAll(net *site.Network, procs []*Process) error {
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
