package xcover

import "testing"

func TestSparseSetAddRemoveMembership(t *testing.T) {
	s := newSparseSet(5)
	if !s.isEmpty() {
		t.Fatal("fresh set should be empty")
	}
	for x := 0; x < 5; x++ {
		if s.contains(x) {
			t.Fatalf("x=%d should not be a member of a fresh set", x)
		}
	}

	s.add(2)
	s.add(4)
	s.add(0)
	if s.len() != 3 {
		t.Fatalf("len() = %d, want 3", s.len())
	}
	for _, x := range []int{2, 4, 0} {
		if !s.contains(x) {
			t.Fatalf("x=%d should be a member after add", x)
		}
	}
	for _, x := range []int{1, 3} {
		if s.contains(x) {
			t.Fatalf("x=%d should not be a member", x)
		}
	}

	s.remove(4)
	if s.contains(4) {
		t.Fatal("4 should not be a member after remove")
	}
	if s.len() != 2 {
		t.Fatalf("len() = %d, want 2", s.len())
	}
}

func TestSparseSetRemoveUnremoveRoundTrip(t *testing.T) {
	s := newSparseSet(8)
	for x := 0; x < 8; x++ {
		s.add(x)
	}
	before := snapshot(s)

	s.remove(3)
	s.remove(6)
	s.remove(0)

	// Undo in strict LIFO order.
	s.unremove()
	s.unremove()
	s.unremove()

	after := snapshot(s)
	if before != after {
		t.Fatalf("remove/unremove round trip did not restore state:\nbefore=%v\nafter =%v", before, after)
	}
}

func TestSparseSetAddUnaddRoundTrip(t *testing.T) {
	s := newSparseSet(4)
	s.add(1)
	before := snapshot(s)

	s.add(3)
	s.unadd()

	after := snapshot(s)
	if before != after {
		t.Fatalf("add/unadd round trip did not restore state:\nbefore=%v\nafter =%v", before, after)
	}
}

func TestSparseSetCloneIsIndependent(t *testing.T) {
	s := newSparseSet(4)
	s.add(0)
	s.add(2)
	c := s.clone()

	c.add(1)
	if s.contains(1) {
		t.Fatal("mutating the clone must not affect the original")
	}
	if !c.contains(1) {
		t.Fatal("clone should reflect its own mutation")
	}
}

type setSnapshot struct {
	p, q [64]int
	n    int
}

func snapshot(s *sparseSet) setSnapshot {
	var snap setSnapshot
	copy(snap.p[:], s.p)
	copy(snap.q[:], s.q)
	snap.n = s.n
	return snap
}
