package leftist

import (
	"context"
	"iter"

	"github.com/davidvella/meld/monitoring"
)

type node[T any] struct {
	value T
	left  *node[T]
	right *node[T]
	rank  int // Null path length; a missing child counts as -1.
}

func rank[T any](n *node[T]) int {
	if n == nil {
		return -1
	}
	return n.rank
}

// Heap is a mergeable priority queue backed by a leftist tree. Top and Pop
// return the element that no other element is strictly greater than.
//
// A Heap is not safe for concurrent use.
type Heap[T any] struct {
	root *node[T]
	size int
	less Less[T]
	opts options
}

// New creates an empty heap ordered by less.
func New[T any](less Less[T], opts ...Option) *Heap[T] {
	if less == nil {
		panic("leftist: nil comparator")
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Heap[T]{
		less: less,
		opts: o,
	}
}

// Build creates a heap holding values in linear time by merging trees
// pairwise. If the comparator fails no heap is returned.
func Build[T any](less Less[T], values []T, opts ...Option) (*Heap[T], error) {
	h := New(less, opts...)
	if len(values) == 0 {
		return h, nil
	}

	queue := make([]*node[T], 0, len(values))
	for _, v := range values {
		queue = append(queue, &node[T]{value: v})
	}

	for len(queue) > 1 {
		a, b := queue[0], queue[1]
		queue = queue[2:]

		merged, _, err := h.meld(a, b)
		if err != nil {
			h.rollback("build", err)
			return nil, err
		}
		queue = append(queue, merged)
	}

	h.root = queue[0]
	h.size = len(values)
	h.observe("build")
	return h, nil
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int {
	return h.size
}

// Empty reports whether the heap holds no elements.
func (h *Heap[T]) Empty() bool {
	return h.size == 0
}

// Top returns the highest priority element without removing it.
func (h *Heap[T]) Top() (T, error) {
	if h.root == nil {
		var zero T
		return zero, ErrEmpty
	}
	return h.root.value, nil
}

// Push adds v to the heap. On comparator failure the heap is unchanged.
func (h *Heap[T]) Push(v T) error {
	root, _, err := h.meld(h.root, &node[T]{value: v})
	if err != nil {
		h.rollback("push", err)
		return err
	}

	h.root = root
	h.size++
	h.observe("push")
	return nil
}

// Pop removes and returns the highest priority element. On comparator
// failure the heap is unchanged and the element stays on top.
func (h *Heap[T]) Pop() (T, error) {
	var zero T
	if h.root == nil {
		return zero, ErrEmpty
	}

	top := h.root
	root, _, err := h.meld(top.left, top.right)
	if err != nil {
		h.rollback("pop", err)
		return zero, err
	}

	h.root = root
	h.size--
	top.left, top.right = nil, nil
	h.observe("pop")
	return top.value, nil
}

// Merge moves every element of other into h using h's comparator and leaves
// other empty. Merging a heap with itself, or with nil, does nothing. On
// comparator failure both heaps are unchanged.
func (h *Heap[T]) Merge(other *Heap[T]) error {
	if other == nil || other == h {
		return nil
	}

	root, steps, err := h.meld(h.root, other.root)
	if err != nil {
		h.rollback("merge", err)
		return err
	}

	h.opts.logger.Log(context.Background(), monitoring.DEBUG, "merge", "heaps merged", map[string]interface{}{
		"heap":        h.opts.name,
		"other":       other.opts.name,
		"size":        h.size,
		"other_size":  other.size,
		"spine_steps": steps,
	})

	h.root = root
	h.size += other.size
	other.root = nil
	other.size = 0

	h.opts.stats.RecordMergeSpine(context.Background(), steps)
	h.observe("merge")
	other.opts.stats.SetSize(context.Background(), 0)
	return nil
}

// Clone returns an independent deep copy of h sharing its comparator. The
// copy starts with h's options; opts are applied on top, so a clone reporting
// into the same registry should be given its own name and stats.
func (h *Heap[T]) Clone(opts ...Option) *Heap[T] {
	o := h.opts
	for _, opt := range opts {
		opt(&o)
	}

	return &Heap[T]{
		root: clone(h.root),
		size: h.size,
		less: h.less,
		opts: o,
	}
}

// CopyFrom replaces the contents of h with a deep copy of src and adopts its
// comparator. Copying a heap onto itself does nothing.
func (h *Heap[T]) CopyFrom(src *Heap[T]) {
	if src == h {
		return
	}

	root := clone(src.root)
	h.root = root
	h.size = src.size
	h.less = src.less
	h.observe("copy")
}

// Clear removes every element.
func (h *Heap[T]) Clear() {
	h.root = nil
	h.size = 0
	h.observe("clear")
}

// Values yields every element once, in no particular order, without
// modifying the heap. The heap must not be modified during iteration.
func (h *Heap[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		if h.root == nil {
			return
		}

		stack := []*node[T]{h.root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(n.value) {
				return
			}
			if n.right != nil {
				stack = append(stack, n.right)
			}
			if n.left != nil {
				stack = append(stack, n.left)
			}
		}
	}
}

// Drain pops elements in priority order until the heap is empty. A comparator
// failure is yielded once and ends the sequence; the element that could not
// be removed stays in the heap.
func (h *Heap[T]) Drain() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for h.root != nil {
			v, err := h.Pop()
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

func (h *Heap[T]) observe(op string) {
	ctx := context.Background()
	h.opts.stats.RecordOperation(ctx, op)
	h.opts.stats.SetSize(ctx, h.size)
}

func (h *Heap[T]) rollback(op string, err error) {
	ctx := context.Background()
	h.opts.stats.RecordRollback(ctx, op, err)
	h.opts.logger.Log(ctx, monitoring.WARN, "rollback", "operation rolled back", map[string]interface{}{
		"heap":  h.opts.name,
		"op":    op,
		"size":  h.size,
		"error": err.Error(),
	})
}

type copyFrame[T any] struct {
	dst *node[T]
	src *node[T]
}

// clone copies the tree rooted at src node by node, keeping shape and ranks.
func clone[T any](src *node[T]) *node[T] {
	if src == nil {
		return nil
	}

	root := &node[T]{value: src.value, rank: src.rank}
	stack := []copyFrame[T]{{dst: root, src: src}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if l := f.src.left; l != nil {
			f.dst.left = &node[T]{value: l.value, rank: l.rank}
			stack = append(stack, copyFrame[T]{dst: f.dst.left, src: l})
		}
		if r := f.src.right; r != nil {
			f.dst.right = &node[T]{value: r.value, rank: r.rank}
			stack = append(stack, copyFrame[T]{dst: f.dst.right, src: r})
		}
	}
	return root
}
