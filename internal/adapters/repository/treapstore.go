package repository

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/okian/courtside/pkg/metrics"
)

// Treap-based, in-memory Store implementation.
//
// Ordering: EndedAt DESC, then ID ASC (deterministic). "less" means listed
// earlier, so in-order traversal yields newest sessions first and the
// rightmost node is always the eviction candidate.

const defaultCapacity = 1000

// treap node
type node struct {
	id    string
	ended int64
	prio  uint64
	left  *node
	right *node
	size  int
}

func nsize(n *node) int {
	if n == nil {
		return 0
	}
	return n.size
}

func fix(n *node) {
	if n != nil {
		n.size = 1 + nsize(n.left) + nsize(n.right)
	}
}

// less returns true if (aEnded, aID) should be listed before (bEnded, bID).
func less(aEnded int64, aID string, bEnded int64, bID string) bool {
	if aEnded != bEnded {
		return aEnded > bEnded
	}
	return aID < bID
}

func rotateRight(y *node) *node {
	x := y.left
	y.left = x.right
	x.right = y
	fix(y)
	fix(x)
	return x
}

func rotateLeft(x *node) *node {
	y := x.right
	x.right = y.left
	y.left = x
	fix(x)
	fix(y)
	return y
}

func insert(n *node, id string, ended int64, prio uint64) *node {
	if n == nil {
		return &node{id: id, ended: ended, prio: prio, size: 1}
	}
	if less(ended, id, n.ended, n.id) {
		n.left = insert(n.left, id, ended, prio)
		if n.left.prio > n.prio {
			n = rotateRight(n)
		}
	} else {
		n.right = insert(n.right, id, ended, prio)
		if n.right.prio > n.prio {
			n = rotateLeft(n)
		}
	}
	fix(n)
	return n
}

func deleteNode(n *node, id string, ended int64) *node {
	if n == nil {
		return nil
	}
	switch {
	case ended == n.ended && id == n.id:
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		if n.left.prio > n.right.prio {
			n = rotateRight(n)
			n.right = deleteNode(n.right, id, ended)
		} else {
			n = rotateLeft(n)
			n.left = deleteNode(n.left, id, ended)
		}
	case less(ended, id, n.ended, n.id):
		n.left = deleteNode(n.left, id, ended)
	default:
		n.right = deleteNode(n.right, id, ended)
	}
	fix(n)
	return n
}

// last returns the node listed last (earliest ended).
func last(n *node) *node {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

// collect appends up to limit records in list order.
func collect(n *node, limit int, byID map[string]Record, out *[]Record) {
	if n == nil || len(*out) >= limit {
		return
	}
	collect(n.left, limit, byID, out)
	if len(*out) < limit {
		if rec, ok := byID[n.id]; ok {
			*out = append(*out, rec)
		}
	}
	if len(*out) < limit {
		collect(n.right, limit, byID, out)
	}
}

// TreapStore keeps finished sessions ordered by end time.
type TreapStore struct {
	mu       sync.RWMutex
	root     *node
	byID     map[string]Record
	capacity int
}

// NewTreapStore constructs a history store with configuration options.
func NewTreapStore(opts ...Option) *TreapStore {
	s := &TreapStore{
		byID:     make(map[string]Record),
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save implements Store.Save with O(log n) expected time.
func (s *TreapStore) Save(_ context.Context, r Record) error { //nolint:gocritic // hugeParam: Record is stored by value
	if r.ID == "" {
		metrics.RecordErrorByComponent("repository", "invalid_id")
		return ErrInvalidID
	}
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}
	ended := r.EndedAt.UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.byID[r.ID]; ok {
		s.root = deleteNode(s.root, old.ID, old.EndedAt.UnixNano())
	}
	s.byID[r.ID] = r
	s.root = insert(s.root, r.ID, ended, rand.Uint64())

	for len(s.byID) > s.capacity {
		oldest := last(s.root)
		s.root = deleteNode(s.root, oldest.id, oldest.ended)
		delete(s.byID, oldest.id)
	}
	return nil
}

// Get returns a session by ID.
func (s *TreapStore) Get(_ context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// List returns up to limit sessions, newest first.
func (s *TreapStore) List(_ context.Context, limit int) ([]Record, error) {
	if limit < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, min(limit, len(s.byID)))
	collect(s.root, limit, s.byID, &out)
	return out, nil
}

// Count returns the number of sessions retained.
func (s *TreapStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return nsize(s.root)
}
