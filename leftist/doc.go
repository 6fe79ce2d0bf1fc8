// Package leftist implements a generic mergeable priority queue backed by a
// leftist heap. Besides the usual push, top and pop, two independently built
// heaps can be merged in O(log n) time, leaving the source heap empty.
//
// A leftist heap is a heap-ordered binary tree in which every node's left
// subtree has a rank (null path length) at least as large as its right
// subtree. The right spine of any tree therefore has O(log n) nodes, and all
// operations work by merging right spines.
//
// Key features:
//   - Generic implementation supporting any element type
//   - O(log n) Push, Pop and Merge; O(1) Top, Len and Empty
//   - O(n) construction from a slice with Build
//   - Deep copies with Clone and CopyFrom
//   - Fallible comparators with strong rollback guarantees
//
// Basic usage:
//
//	// Create a max-heap of ints
//	h := leftist.New(leftist.Ordered[int]())
//
//	// Add items
//	_ = h.Push(5)
//	_ = h.Push(9)
//	_ = h.Push(1)
//
//	// Highest priority item
//	top, err := h.Top() // 9
//
//	// Move all of another heap's elements into h
//	other := leftist.New(leftist.Ordered[int]())
//	_ = other.Push(7)
//	err = h.Merge(other) // other is now empty
//
//	// Remove in priority order
//	for v, err := range h.Drain() {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(v) // 9 7 5 1
//	}
//
// The comparator reports whether its first argument is strictly less than the
// second, and may fail by returning an error or by panicking. Push, Pop and
// Merge never leave a partial result behind: when the comparator fails they
// return an error wrapping ErrComparator and every heap involved is exactly as
// it was before the call. Top and Pop on an empty heap return ErrEmpty.
package leftist
