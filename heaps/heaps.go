// Package heaps implements a priority queue: a mutable set with an
// extractable greatest element.
//
// Elements carry an integer weight and a serial number assigned at insertion.
// Element a is greater than element b if
//
//	a.weight > b.weight || a.weight == b.weight && a.serial < b.serial
//
// so among equal weights the element inserted first is extracted first.  This
// is a total order, so the extraction sequence is a function of the insertion
// sequence alone.
//
// In a queue q, the elements of q.xs have the heap property: for element n,
//
//	left(n) >= len(q.xs) || q.xs[n] >= q.xs[left(n)]
//	and right(n) >= len(q.xs) || q.xs[n] >= q.xs[right(n)]
package heaps

import "errors"

var ErrUnderflow = errors.New("heaps: extract from empty queue")

type item[T any] struct {
	weight  int64
	serial  uint64
	payload T
}

func (a *item[T]) greater(b *item[T]) bool {
	return a.weight > b.weight || a.weight == b.weight && a.serial < b.serial
}

type PriorityQueue[T any] struct {
	xs         []item[T]
	nextSerial uint64
}

// Create an empty queue with room for `capacity` elements before the storage
// has to grow.

func NewPriorityQueue[T any](capacity int) *PriorityQueue[T] {
	return &PriorityQueue[T]{xs: make([]item[T], 0, capacity)}
}

// Return the number of elements in the queue.

func (q *PriorityQueue[T]) Len() int {
	return len(q.xs)
}

// Insert `payload` with priority `weight`.

func (q *PriorityQueue[T]) Insert(weight int64, payload T) {
	x := item[T]{weight: weight, serial: q.nextSerial, payload: payload}
	q.nextSerial++

	// extend slice; the stored value doesn't matter
	q.xs = append(q.xs, x)

	// ascend the tree, moving too-small elements out of the way
	i := len(q.xs) - 1
	for i > 0 && x.greater(&q.xs[parent(i)]) {
		q.xs[i] = q.xs[parent(i)]
		i = parent(i)
	}
	q.xs[i] = x
}

// Remove the greatest element and return its payload and weight.

func (q *PriorityQueue[T]) ExtractMax() (payload T, weight int64, err error) {
	l := len(q.xs)
	if l == 0 {
		err = ErrUnderflow
		return
	}
	max := q.xs[0]
	q.xs[0] = q.xs[l-1]
	q.xs[l-1] = item[T]{}
	q.xs = q.xs[0 : l-1]
	if l > 2 {
		q.siftDown(0)
	}
	return max.payload, max.weight, nil
}

// The children of `xs[loc]` have the heap property, but the element `xs[loc]`
// may be smaller than one of them.  Move it down until `xs[loc]` also has the
// heap property.

func (q *PriorityQueue[T]) siftDown(loc int) {
	xs := q.xs
	for {
		greatest := loc
		if l := left(loc); l < len(xs) && xs[l].greater(&xs[greatest]) {
			greatest = l
		}
		if r := right(loc); r < len(xs) && xs[r].greater(&xs[greatest]) {
			greatest = r
		}
		if greatest == loc {
			break
		}
		xs[loc], xs[greatest] = xs[greatest], xs[loc]
		loc = greatest
	}
}

// Test whether the queue rooted at `root` has the heap property.

func (q *PriorityQueue[T]) hasHeapProperty(root int) bool {
	if l := left(root); l < len(q.xs) {
		if q.xs[l].greater(&q.xs[root]) || !q.hasHeapProperty(l) {
			return false
		}
	}
	if r := right(root); r < len(q.xs) {
		if q.xs[r].greater(&q.xs[root]) || !q.hasHeapProperty(r) {
			return false
		}
	}
	return true
}

func parent(loc int) int {
	return (loc - 1) / 2
}

func left(loc int) int {
	return loc*2 + 1
}

func right(loc int) int {
	return (loc + 1) * 2
}
