// This file implements the Mitchell-Merritt public/private-label probe
// on the site runtime.
package deadlock

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/distsim/site"
)

// ErrUnknownTarget indicates a label site addressed a resource owner
// that is not among its registered peers.
var ErrUnknownTarget = errors.New("deadlock: resource owner is not a registered peer")

// TaskKind discriminates the label-scenario task variants.
type TaskKind uint8

const (
	// TaskIdle sleeps for the task duration, granting freely.
	TaskIdle TaskKind = iota

	// TaskExecute acquires the resources named in ReqFrom, then works
	// for the task duration with the own resource busy.
	TaskExecute

	// TaskBlock marks the site busy forever; every request is answered
	// with a Block reply.
	TaskBlock
)

// Task is one workload segment of a label site.
type Task struct {
	Kind     TaskKind
	Duration time.Duration

	// ReqFrom names the sites whose resource a TaskExecute needs.
	ReqFrom []string
}

// Mitchell-Merritt messages. Each site owns exactly one resource,
// identified by the site name; the algorithm only tracks who is asking
// whom.
type (
	// LabelRequest asks the owner for its resource.
	LabelRequest struct {
		From     site.ID
		Resource string
		ReplyTo  *site.Mailbox
	}

	// Grant hands the resource to a requester - and, sent back to the
	// owner, returns it.
	Grant struct {
		From     site.ID
		Resource string
	}

	// Block tells a requester it is now blocked; Pub carries the
	// blocker's public label.
	Block struct {
		Pub uint64
	}

	// Transmit propagates a public label along the blocked-on chain.
	Transmit struct {
		Pub uint64
	}
)

// Detection reports one deadlock declaration.
type Detection struct {
	Site  site.ID
	Label uint64
}

// LabelOption configures optional behavior of a LabelSite.
type LabelOption func(*LabelOptions)

// LabelOptions holds LabelSite hooks.
type LabelOptions struct {
	// OnDetect, if non-nil, is invoked on every deadlock declaration.
	OnDetect func(d Detection)
}

// WithOnDetect installs fn as the detection hook.
func WithOnDetect(fn func(d Detection)) LabelOption {
	return func(o *LabelOptions) { o.OnDetect = fn }
}

// blockedEntry remembers one requester blocked on this site.
type blockedEntry struct {
	id      site.ID
	replyTo *site.Mailbox
}

// LabelSite is one site of the Mitchell-Merritt probe. Initial labels
// are site-unique (sequence + 1). The site's single resource is busy
// while a task is in progress and lent while granted out.
type LabelSite struct {
	site *site.Site
	net  *site.Network
	opts LabelOptions

	public  uint64
	private uint64

	busy     bool            // a task is in progress (or TaskBlock)
	lent     bool            // own resource granted out
	holding  map[string]bool // foreign resources currently held
	awaiting map[string]bool // foreign resources still needed
	blocked  []blockedEntry  // requesters blocked on this site
	probed   bool            // a Block was received for the current wait

	tasks []Task
}

// NewLabelSite wraps s into a probe site with workload tasks.
func NewLabelSite(net *site.Network, s *site.Site, tasks []Task, opts ...LabelOption) *LabelSite {
	l := &LabelSite{
		site:     s,
		net:      net,
		public:   uint64(s.ID().Seq) + 1,
		private:  uint64(s.ID().Seq) + 1,
		holding:  make(map[string]bool),
		awaiting: make(map[string]bool),
		tasks:    tasks,
	}
	for _, fn := range opts {
		fn(&l.opts)
	}

	return l
}

// Site returns the underlying runtime site.
func (l *LabelSite) Site() *site.Site { return l.site }

// Labels returns the current (public, private) pair.
// Meaningful once the site's goroutine has stopped (after Shutdown).
func (l *LabelSite) Labels() (public, private uint64) { return l.public, l.private }

// Run executes the task list, then drains until shutdown.
func (l *LabelSite) Run() error {
	done := false
	markDone := func() {
		if !done {
			done = true
			l.net.WorkloadDone()
		}
	}
	defer markDone()

	if !l.site.AwaitStart() {
		return nil
	}
	for _, task := range l.tasks {
		switch task.Kind {
		case TaskIdle:
			l.site.Log().Info().Dur("for", task.Duration).Msg("idle")
			time.Sleep(task.Duration)
		case TaskExecute:
			if err := l.execute(task); err != nil {
				return err
			}
		case TaskBlock:
			l.site.Log().Info().Msg("blocking forever")
			l.busy = true

			return l.drain() // reports workload completion only when drain returns
		}
		if err := l.poll(); err != nil {
			return err
		}
	}

	l.site.Log().Info().Msg("workload finished, draining")
	markDone()

	return l.drain()
}

// execute acquires every needed foreign resource, works for the task
// duration, then returns the borrowed resources and serves waiters.
func (l *LabelSite) execute(task Task) error {
	// 1. The own resource is busy for the whole task
	l.busy = true
	l.probed = false

	// 2. Request whatever is missing, directly from each owner
	for _, name := range task.ReqFrom {
		if name == l.site.ID().Name || l.holding[name] {
			continue
		}
		l.awaiting[name] = true
		owner, ok := l.peerByName(name)
		if !ok {
			return fmt.Errorf("%w: %v -> %q", ErrUnknownTarget, l.site.ID(), name)
		}
		if err := l.site.Send(owner, LabelRequest{
			From:     l.site.ID(),
			Resource: name,
			ReplyTo:  l.site.Mailbox(),
		}); err != nil {
			return fmt.Errorf("deadlock: %w", err)
		}
		l.site.Log().Debug().Str("resource", name).Msg("requested resource")
	}

	// 3. Wait until everything is granted
	for len(l.awaiting) > 0 {
		msg, ok := l.site.Recv()
		if !ok {
			return nil // shutdown while blocked
		}
		if err := l.dispatch(msg); err != nil {
			return err
		}
	}

	// 4. Work
	l.site.Log().Info().Dur("for", task.Duration).Msg("executing")
	time.Sleep(task.Duration)

	// 5. Return borrowed resources to their owners
	for name := range l.holding {
		owner, ok := l.peerByName(name)
		if !ok {
			return fmt.Errorf("%w: %v -> %q", ErrUnknownTarget, l.site.ID(), name)
		}
		if err := l.site.Send(owner, Grant{From: l.site.ID(), Resource: name}); err != nil {
			return fmt.Errorf("deadlock: %w", err)
		}
		delete(l.holding, name)
	}

	// 6. Own resource is free again; serve the first waiter, if any
	l.busy = false
	l.serveBlocked()

	return nil
}

// dispatch applies one inbound message to the probe state.
func (l *LabelSite) dispatch(msg site.Message) error {
	switch m := msg.(type) {
	case LabelRequest:
		return l.onRequest(m)
	case Grant:
		l.onGrant(m)
	case Block:
		l.onBlock(m)
	case Transmit:
		l.onTransmit(m)
	default:
		return fmt.Errorf("deadlock: site %v: unexpected message %T", l.site.ID(), msg)
	}

	return nil
}

// onRequest grants the own resource if it is free, otherwise records
// the requester as blocked on this site and replies with the public
// label.
func (l *LabelSite) onRequest(m LabelRequest) error {
	if !l.busy && !l.lent {
		l.lent = true
		l.site.Log().Info().Stringer("to", m.From).Msg("granted resource")
		m.ReplyTo.Send(Grant{From: l.site.ID(), Resource: m.Resource})

		return nil
	}
	l.blocked = append(l.blocked, blockedEntry{id: m.From, replyTo: m.ReplyTo})
	l.site.Log().Info().Stringer("requester", m.From).Uint64("public", l.public).
		Msg("busy, blocking requester")
	m.ReplyTo.Send(Block{Pub: l.public})

	return nil
}

// onGrant registers a received resource - or, for the own resource,
// takes it back and serves the next waiter.
func (l *LabelSite) onGrant(m Grant) {
	if m.Resource == l.site.ID().Name {
		l.lent = false
		l.serveBlocked()

		return
	}
	l.site.Log().Info().Str("resource", m.Resource).Msg("received resource")
	l.holding[m.Resource] = true
	delete(l.awaiting, m.Resource)
	l.probed = false
	l.private++
}

// onBlock jumps both labels to max(public, observed)+1 and propagates
// the new public label to everyone blocked on this site.
func (l *LabelSite) onBlock(m Block) {
	next := l.public
	if m.Pub > next {
		next = m.Pub
	}
	next++
	l.public, l.private = next, next
	l.probed = true
	l.site.Log().Info().Uint64("label", next).Msg("blocked, labels jumped")
	for _, b := range l.blocked {
		b.replyTo.Send(Transmit{Pub: l.public})
	}
}

// onTransmit declares a deadlock when the site's own public label
// returns while public == private; larger labels are adopted and
// propagated further along the blocked-on chain.
func (l *LabelSite) onTransmit(m Transmit) {
	if l.public == l.private && m.Pub == l.public && l.probed {
		l.site.Log().Warn().Uint64("label", l.public).Msg("deadlock detected")
		if l.opts.OnDetect != nil {
			l.opts.OnDetect(Detection{Site: l.site.ID(), Label: l.public})
		}

		return
	}
	if m.Pub > l.public {
		l.public = m.Pub
		for _, b := range l.blocked {
			b.replyTo.Send(Transmit{Pub: l.public})
		}
	}
}

// serveBlocked hands the freed own resource to the oldest waiter.
func (l *LabelSite) serveBlocked() {
	if l.busy || l.lent || len(l.blocked) == 0 {
		return
	}
	head := l.blocked[0]
	l.blocked = l.blocked[1:]
	l.lent = true
	l.site.Log().Info().Stringer("to", head.id).Msg("granted resource to waiter")
	head.replyTo.Send(Grant{From: l.site.ID(), Resource: l.site.ID().Name})
}

// poll services inbound traffic without blocking.
func (l *LabelSite) poll() error {
	for {
		msg, ok := l.site.TryRecv()
		if !ok {
			return nil
		}
		if err := l.dispatch(msg); err != nil {
			return err
		}
	}
}

// drain keeps answering after the workload (or a TaskBlock) ends.
func (l *LabelSite) drain() error {
	for {
		msg, ok := l.site.Recv()
		if !ok {
			return nil
		}
		if err := l.dispatch(msg); err != nil {
			return err
		}
	}
}

// peerByName resolves a scenario name to a registered peer identity.
func (l *LabelSite) peerByName(name string) (site.ID, bool) {
	for _, id := range l.site.Peers() {
		if id.Name == name {
			return id, true
		}
	}

	return site.ID{}, false
}

// RunLabels starts every label site and waits for either workload
// quiescence or the first deadlock declaration, then shuts the network
// down. All declarations observed up to shutdown are returned.
func RunLabels(net *site.Network, sites []*LabelSite) ([]Detection, error) {
	detections := make(chan Detection, len(sites))
	for _, l := range sites {
		prev := l.opts.OnDetect
		l.opts.OnDetect = func(d Detection) {
			if prev != nil {
				prev(d)
			}
			select {
			case detections <- d:
			default:
			}
		}
	}

	net.Start()
	errs := make(chan error, len(sites))
	for _, l := range sites {
		l := l
		net.Go(func() {
			if err := l.Run(); err != nil {
				l.site.Log().Error().Err(err).Msg("site aborted")
				errs <- err
			}
		})
	}

	var out []Detection
	select {
	case d := <-detections:
		out = append(out, d)
		// Give simultaneous declarations a moment to surface.
		settle := time.After(50 * time.Millisecond)
	collect:
		for {
			select {
			case d = <-detections:
				out = append(out, d)
			case <-settle:
				break collect
			}
		}
	case <-net.Quiesced():
	}
	net.Shutdown()

	// Late declarations that raced shutdown.
	for {
		select {
		case d := <-detections:
			out = append(out, d)
		default:
			if err := firstError(errs); err != nil {
				return out, err
			}

			return out, nil
		}
	}
}

// firstError drains errs non-blockingly and returns the first error.
func firstError(errs <-chan error) error {
	select {
	case err := <-errs:
		return err
	default:
		return nil
	}
}
