// This file implements the unbounded FIFO mailbox sites receive on.
package site

import "sync"

// Message is a tagged variant realized as a small concrete struct per
// algorithm; receivers dispatch by type switch. Payloads are values
// (identities, logical timestamps, integer labels) plus, where an
// algorithm needs a reply path, a *Mailbox send handle.
type Message any

// Start unblocks a site; it is broadcast by the Network only after
// every peer registration has been delivered.
type Start struct{}

// RegisterPeer records an outbound handle to another site. Receiving
// it repeatedly is harmless; registration is idempotent.
type RegisterPeer struct {
	ID      ID
	Mailbox *Mailbox
}

// Mailbox is an unbounded multi-producer FIFO queue of Messages.
//
// Send never blocks and is safe from any goroutine. Recv blocks until
// a message arrives or the mailbox is closed. Close is the
// orchestrator's shutdown signal: after it, Recv drains the backlog
// and then reports ok=false, while late sends are dropped - a
// finished site therefore never makes a peer crash.
type Mailbox struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	queue    []Message
	closed   bool
}

// NewMailbox returns an empty, open mailbox.
func NewMailbox() *Mailbox {
	m := &Mailbox{}
	m.nonEmpty = sync.NewCond(&m.mu)

	return m
}

// Send enqueues msg. It never blocks; capacity is unbounded in the
// simulation. Sends after Close are dropped.
func (m *Mailbox) Send(msg Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.queue = append(m.queue, msg)
	m.nonEmpty.Signal()
}

// Recv blocks until a message is available and dequeues it.
// ok is false once the mailbox is closed and drained.
func (m *Mailbox) Recv() (msg Message, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for len(m.queue) == 0 && !m.closed {
		m.nonEmpty.Wait()
	}
	if len(m.queue) == 0 {
		return nil, false
	}
	msg = m.queue[0]
	m.queue = m.queue[1:]

	return msg, true
}

// TryRecv dequeues a message if one is immediately available.
func (m *Mailbox) TryRecv() (msg Message, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return nil, false
	}
	msg = m.queue[0]
	m.queue = m.queue[1:]

	return msg, true
}

// Close marks the mailbox closed and wakes every blocked receiver.
// Idempotent.
func (m *Mailbox) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	m.nonEmpty.Broadcast()
}

// Len reports the number of queued messages.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.queue)
}
