// Package list implements a singly linked list whose nodes live inside a
// pool-backed memory region rather than on the Go heap.
//
// Every node is an 8-byte block allocated from a pool.Pool: a uint16 value
// followed by the reference of the next node. The list is a deliberately
// thin consumer of the allocator; it exists to exercise Alloc and Free
// under realistic churn.
//
// A List holds its own mutex, independent of the pool's, so list traversal
// and mutation are safe for concurrent use.
package list
