// Package cluster abstracts the inter-process half of the parallel search
// engine behind a small interface, per spec.md §9: "abstract the
// distributed reduction behind an interface... This decouples the core
// from any specific messaging transport." Nothing in internal/xcover
// depends on this package; it is wired in only by cmd/xcover.
package cluster

import (
	"encoding/gob"
	"net"
	"time"

	"github.com/pkg/errors"
)

// Reducer is rank()/size() plus the one distributed operation the search
// engine needs: summing one int64 per process onto rank 0 (spec.md §6's
// wire protocol, §9's reduce_sum_i64).
type Reducer interface {
	Rank() int
	Size() int
	// ReduceSum combines local (this process's solution count) with every
	// peer's. isCoordinator reports whether the caller is rank 0, the only
	// rank for which total is meaningful.
	ReduceSum(local int64) (total int64, isCoordinator bool, err error)
}

// Local simulates a Size()-process cluster with goroutines standing in for
// processes, communicating over channels instead of sockets. Used by tests
// and by single-process (size==1) runs, where it degenerates to returning
// local unchanged.
type Local struct {
	rank, size int
	peers      []chan int64
}

// NewLocalCluster returns one Local per simulated rank, sharing the same
// channel set, so that ranks 1..size-1 can hand their local sum to rank 0.
func NewLocalCluster(size int) []*Local {
	if size < 1 {
		size = 1
	}
	peers := make([]chan int64, size)
	for i := range peers {
		peers[i] = make(chan int64, 1)
	}
	out := make([]*Local, size)
	for r := 0; r < size; r++ {
		out[r] = &Local{rank: r, size: size, peers: peers}
	}
	return out
}

func (l *Local) Rank() int { return l.rank }
func (l *Local) Size() int { return l.size }

func (l *Local) ReduceSum(local int64) (int64, bool, error) {
	if l.size == 1 {
		return local, true, nil
	}
	if l.rank != 0 {
		l.peers[l.rank] <- local
		return 0, false, nil
	}
	total := local
	for r := 1; r < l.size; r++ {
		total += <-l.peers[r]
	}
	return total, true, nil
}

// TCP is a real multi-process reducer: rank 0 listens and accepts Size()-1
// connections, each carrying one gob-encoded int64 (spec.md §6: "each
// non-coordinator process sends a single 64-bit signed integer... with a
// fixed tag. Rank 0 receives P-1 such integers in arrival order" — arrival
// order here is Accept order, since no ordering is required of the sum).
type TCP struct {
	rank, size  int
	listenAddr  string   // rank 0 only: address to listen on
	coordinator string   // ranks != 0 only: rank 0's dial-back address
	dialTimeout time.Duration
}

// NewTCP builds a TCP reducer. listenAddr is only used when rank==0;
// coordinator is only used when rank!=0.
func NewTCP(rank, size int, listenAddr, coordinator string, dialTimeout time.Duration) *TCP {
	if dialTimeout <= 0 {
		dialTimeout = 10 * time.Second
	}
	return &TCP{rank: rank, size: size, listenAddr: listenAddr, coordinator: coordinator, dialTimeout: dialTimeout}
}

func (t *TCP) Rank() int { return t.rank }
func (t *TCP) Size() int { return t.size }

func (t *TCP) ReduceSum(local int64) (int64, bool, error) {
	if t.size == 1 {
		return local, true, nil
	}
	if t.rank == 0 {
		total, err := t.receiveAll(local)
		return total, true, err
	}
	return 0, false, t.send(local)
}

func (t *TCP) receiveAll(local int64) (int64, error) {
	ln, err := net.Listen("tcp", t.listenAddr)
	if err != nil {
		return 0, errors.Wrapf(err, "cluster: rank 0 listen on %s", t.listenAddr)
	}
	defer ln.Close()

	total := local
	for i := 0; i < t.size-1; i++ {
		conn, err := ln.Accept()
		if err != nil {
			return 0, errors.Wrap(err, "cluster: accept peer")
		}
		var v int64
		decErr := gob.NewDecoder(conn).Decode(&v)
		conn.Close()
		if decErr != nil {
			return 0, errors.Wrap(decErr, "cluster: decode peer total")
		}
		total += v
	}
	return total, nil
}

func (t *TCP) send(local int64) error {
	conn, err := net.DialTimeout("tcp", t.coordinator, t.dialTimeout)
	if err != nil {
		return errors.Wrapf(err, "cluster: dial coordinator %s", t.coordinator)
	}
	defer conn.Close()
	if err := gob.NewEncoder(conn).Encode(local); err != nil {
		return errors.Wrap(err, "cluster: send local total")
	}
	return nil
}
