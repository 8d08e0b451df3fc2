package site_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/distsim/site"
)

// TestID_Order verifies the sequence defines the total order, not the name.
func TestID_Order(t *testing.T) {
	a := site.ID{Name: "zulu", Seq: 0}
	b := site.ID{Name: "alpha", Seq: 1}
	if !a.Less(b) || b.Less(a) {
		t.Error("Seq must define the total order")
	}
	if a.String() != "zulu" {
		t.Errorf("String = %q; want zulu", a.String())
	}
	if got := (site.ID{Seq: 3}).String(); got != "site-3" {
		t.Errorf("unnamed String = %q; want site-3", got)
	}
}

// TestSite_AwaitStartStashesEarlyTraffic verifies that an algorithm
// message racing ahead of Start is not lost and is delivered first.
func TestSite_AwaitStartStashesEarlyTraffic(t *testing.T) {
	s := site.New(site.ID{Name: "a"}, nil, zerolog.Nop())
	peer := site.New(site.ID{Name: "b", Seq: 1}, nil, zerolog.Nop())

	s.Mailbox().Send(site.RegisterPeer{ID: peer.ID(), Mailbox: peer.Mailbox()})
	s.Mailbox().Send("early-request")
	s.Mailbox().Send(site.Start{})
	s.Mailbox().Send("after-start")

	if ok := s.AwaitStart(); !ok {
		t.Fatal("AwaitStart reported closed mailbox")
	}
	if _, ok := s.Peer(peer.ID()); !ok {
		t.Fatal("registration was not applied during the handshake")
	}
	msg, ok := s.Recv()
	if !ok || msg != "early-request" {
		t.Fatalf("first Recv = (%v, %v); want stashed early-request", msg, ok)
	}
	msg, ok = s.Recv()
	if !ok || msg != "after-start" {
		t.Fatalf("second Recv = (%v, %v); want after-start", msg, ok)
	}
}

// TestSite_SendUnknownPeer verifies the programmer-error sentinel.
func TestSite_SendUnknownPeer(t *testing.T) {
	s := site.New(site.ID{Name: "a"}, nil, zerolog.Nop())
	err := s.Send(site.ID{Name: "ghost", Seq: 9}, "msg")
	if !errors.Is(err, site.ErrUnknownPeer) {
		t.Fatalf("want ErrUnknownPeer, got %v", err)
	}
}

// TestSite_RegisterIdempotent verifies repeated registrations keep the
// first handle.
func TestSite_RegisterIdempotent(t *testing.T) {
	s := site.New(site.ID{Name: "a"}, nil, zerolog.Nop())
	id := site.ID{Name: "b", Seq: 1}
	first := site.NewMailbox()
	s.RegisterPeer(id, first)
	s.RegisterPeer(id, site.NewMailbox())
	mb, _ := s.Peer(id)
	if mb != first {
		t.Error("re-registration replaced the original handle")
	}
	if got := len(s.Peers()); got != 1 {
		t.Errorf("Peers len = %d; want 1", got)
	}
}

// TestSite_Workload verifies head-first instruction consumption.
func TestSite_Workload(t *testing.T) {
	ins := []site.Instruction{
		site.Idle(10 * time.Millisecond),
		site.Critical(20 * time.Millisecond),
	}
	s := site.New(site.ID{Name: "a"}, ins, zerolog.Nop())
	if s.Done() {
		t.Fatal("fresh site reported Done")
	}
	got, ok := s.NextInstruction()
	if !ok || got.Kind != site.KindIdle {
		t.Fatalf("first instruction = (%v, %v); want idle", got, ok)
	}
	got, ok = s.NextInstruction()
	if !ok || got.Kind != site.KindCritical {
		t.Fatalf("second instruction = (%v, %v); want critical_section", got, ok)
	}
	if _, ok = s.NextInstruction(); ok || !s.Done() {
		t.Fatal("exhausted workload should report Done")
	}
}

// TestNetwork_Handshake wires three sites, checks registrations land
// before Start, and exercises quiescence + shutdown.
func TestNetwork_Handshake(t *testing.T) {
	net := site.NewNetwork()
	var sites []*site.Site
	for _, name := range []string{"a", "b", "c"} {
		sites = append(sites, net.NewSite(name, nil, zerolog.Nop()))
	}
	net.Connect()
	net.Start()

	for _, s := range sites {
		s := s
		net.Go(func() {
			if !s.AwaitStart() {
				t.Error("mailbox closed before Start")
			}
			if got := len(s.Peers()); got != 2 {
				t.Errorf("site %v: peers = %d; want 2", s.ID(), got)
			}
			net.WorkloadDone()
			// drain until shutdown
			for {
				if _, ok := s.Recv(); !ok {
					return
				}
			}
		})
	}

	select {
	case <-net.Quiesced():
	case <-time.After(2 * time.Second):
		t.Fatal("network never quiesced")
	}
	net.Shutdown()
}

// TestNetwork_SeqAssignment verifies insertion order defines Seq.
func TestNetwork_SeqAssignment(t *testing.T) {
	net := site.NewNetwork()
	a := net.NewSite("a", nil, zerolog.Nop())
	b := net.NewSite("b", nil, zerolog.Nop())
	if a.ID().Seq != 0 || b.ID().Seq != 1 {
		t.Errorf("Seq = (%d, %d); want (0, 1)", a.ID().Seq, b.ID().Seq)
	}
}
