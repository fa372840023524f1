package list

import (
	"strconv"
	"strings"
	"sync"

	"github.com/joshuapare/poolkit/internal/buf"
	"github.com/joshuapare/poolkit/pool"
)

// Node layout inside the pool: little-endian value, padding, next reference.
const (
	nodeSize = 8
	valueOff = 0
	nextOff  = 4
)

// List is a singly linked list stored in pool memory. Nodes are addressed
// by their pool.Ref, which stays stable for the node's lifetime.
type List struct {
	mu   sync.Mutex
	pool *pool.Pool
	head pool.Ref
	size int
}

// New returns an empty list drawing node storage from p.
func New(p *pool.Pool) *List {
	return &List{pool: p, head: pool.NilRef}
}

// newNode allocates and initializes a detached node.
func (l *List) newNode(v uint16) (pool.Ref, error) {
	ref, b, err := l.pool.Alloc(nodeSize)
	if err != nil {
		return pool.NilRef, err
	}
	buf.PutU16LE(b[valueOff:], v)
	buf.PutU32LE(b[nextOff:], pool.NilRef)
	return ref, nil
}

func (l *List) node(ref pool.Ref) ([]byte, error) {
	return l.pool.Bytes(ref)
}

func nodeValue(b []byte) uint16    { return buf.U16LE(b[valueOff:]) }
func nodeNext(b []byte) pool.Ref   { return buf.U32LE(b[nextOff:]) }
func setNext(b []byte, n pool.Ref) { buf.PutU32LE(b[nextOff:], n) }

// Append adds a new node holding v at the tail and returns its reference.
func (l *List) Append(v uint16) (pool.Ref, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ref, err := l.newNode(v)
	if err != nil {
		return pool.NilRef, err
	}

	if l.head == pool.NilRef {
		l.head = ref
		l.size++
		return ref, nil
	}

	cur := l.head
	for {
		b, err := l.node(cur)
		if err != nil {
			return pool.NilRef, err
		}
		next := nodeNext(b)
		if next == pool.NilRef {
			setNext(b, ref)
			break
		}
		cur = next
	}
	l.size++
	return ref, nil
}

// InsertAfter adds a new node holding v directly after node.
func (l *List) InsertAfter(node pool.Ref, v uint16) (pool.Ref, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, err := l.node(node)
	if err != nil {
		return pool.NilRef, err
	}
	ref, err := l.newNode(v)
	if err != nil {
		return pool.NilRef, err
	}
	nb, err := l.node(ref)
	if err != nil {
		return pool.NilRef, err
	}
	setNext(nb, nodeNext(prev))
	setNext(prev, ref)
	l.size++
	return ref, nil
}

// InsertBefore adds a new node holding v directly before node.
func (l *List) InsertBefore(node pool.Ref, v uint16) (pool.Ref, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.node(node); err != nil {
		return pool.NilRef, err
	}
	ref, err := l.newNode(v)
	if err != nil {
		return pool.NilRef, err
	}
	nb, err := l.node(ref)
	if err != nil {
		return pool.NilRef, err
	}

	if l.head == node {
		setNext(nb, l.head)
		l.head = ref
		l.size++
		return ref, nil
	}

	cur := l.head
	for cur != pool.NilRef {
		b, err := l.node(cur)
		if err != nil {
			return pool.NilRef, err
		}
		if nodeNext(b) == node {
			setNext(nb, node)
			setNext(b, ref)
			l.size++
			return ref, nil
		}
		cur = nodeNext(b)
	}

	// node was valid pool memory but not part of this list.
	l.pool.Free(ref)
	return pool.NilRef, pool.ErrBadRef
}

// Remove deletes the first node holding v and releases its storage.
// Returns false when no node holds v.
func (l *List) Remove(v uint16) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var prev []byte
	cur := l.head
	for cur != pool.NilRef {
		b, err := l.node(cur)
		if err != nil {
			return false, err
		}
		if nodeValue(b) == v {
			if prev == nil {
				l.head = nodeNext(b)
			} else {
				setNext(prev, nodeNext(b))
			}
			l.pool.Free(cur)
			l.size--
			return true, nil
		}
		prev = b
		cur = nodeNext(b)
	}
	return false, nil
}

// Find returns the reference of the first node holding v.
func (l *List) Find(v uint16) (pool.Ref, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.head
	for cur != pool.NilRef {
		b, err := l.node(cur)
		if err != nil {
			return pool.NilRef, false
		}
		if nodeValue(b) == v {
			return cur, true
		}
		cur = nodeNext(b)
	}
	return pool.NilRef, false
}

// Len returns the number of nodes.
func (l *List) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.size
}

// Values returns the node values in list order.
func (l *List) Values() []uint16 {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]uint16, 0, l.size)
	cur := l.head
	for cur != pool.NilRef {
		b, err := l.node(cur)
		if err != nil {
			break
		}
		out = append(out, nodeValue(b))
		cur = nodeNext(b)
	}
	return out
}

// String renders the list as "[10, 20, 30]".
func (l *List) String() string {
	vals := l.Values()
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Clear releases every node back to the pool and empties the list.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur := l.head
	for cur != pool.NilRef {
		b, err := l.node(cur)
		if err != nil {
			break
		}
		next := nodeNext(b)
		l.pool.Free(cur)
		cur = next
	}
	l.head = pool.NilRef
	l.size = 0
}
