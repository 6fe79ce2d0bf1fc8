package leftist

// meld merges the trees rooted at a and b and returns the new root along with
// the number of right spine nodes that were relinked.
//
// The merge runs in two passes. The first walks both right spines and decides
// the order of their nodes; it is the only place the comparator is called and
// it rewrites nothing. The second relinks the recorded nodes bottom up,
// swapping children to keep rank(left) >= rank(right). A failed comparison
// therefore leaves both trees exactly as they were.
func (h *Heap[T]) meld(a, b *node[T]) (*node[T], int, error) {
	if a == nil {
		return b, 0, nil
	}
	if b == nil {
		return a, 0, nil
	}

	var spine []*node[T]
	for a != nil && b != nil {
		// Ties keep a's node first.
		bWins, err := h.compare(a.value, b.value)
		if err != nil {
			return nil, 0, err
		}
		if bWins {
			spine = append(spine, b)
			b = b.right
		} else {
			spine = append(spine, a)
			a = a.right
		}
	}

	tail := a
	if tail == nil {
		tail = b
	}

	for i := len(spine) - 1; i >= 0; i-- {
		n := spine[i]
		n.right = tail
		if rank(n.left) < rank(n.right) {
			n.left, n.right = n.right, n.left
		}
		n.rank = rank(n.right) + 1
		tail = n
	}

	return tail, len(spine), nil
}

// compare calls the user comparator, converting errors and panics into
// errors wrapping ErrComparator.
func (h *Heap[T]) compare(a, b T) (less bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			less, err = false, comparatorError(&PanicError{Value: r})
		}
	}()

	less, err = h.less(a, b)
	if err != nil {
		return false, comparatorError(err)
	}
	return less, nil
}
