// Package queue contains FIFO work list used by grammar traversals.
package queue

const minCap = 4

// Queue is a FIFO ring buffer. Zero value is not usable, use New.
type Queue[T any] struct {
	items []T
	head  int
	count int
}

// New creates queue holding items in order.
func New[T any](items ...T) *Queue[T] {
	c := minCap
	for c < len(items) {
		c <<= 1
	}
	q := &Queue[T]{items: make([]T, c), count: len(items)}
	copy(q.items, items)
	return q
}

func (q *Queue[T]) IsEmpty() bool {
	return q.count == 0
}

func (q *Queue[T]) Len() int {
	return q.count
}

// Items returns queued items in order, the queue is not modified.
func (q *Queue[T]) Items() []T {
	result := make([]T, q.count)
	for i := range result {
		result[i] = q.items[q.index(i)]
	}
	return result
}

// Append adds items to the tail.
func (q *Queue[T]) Append(items ...T) *Queue[T] {
	for _, item := range items {
		if q.count == len(q.items) {
			q.grow()
		}
		q.items[q.index(q.count)] = item
		q.count++
	}
	return q
}

// First removes and returns the head item, false if queue is empty.
func (q *Queue[T]) First() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}

	result := q.items[q.head]
	q.items[q.head] = zero
	q.head = q.index(1)
	q.count--
	return result, true
}

func (q *Queue[T]) index(i int) int {
	return (q.head + i) & (len(q.items) - 1)
}

func (q *Queue[T]) grow() {
	items := make([]T, len(q.items)<<1)
	for i := 0; i < q.count; i++ {
		items[i] = q.items[q.index(i)]
	}
	q.items = items
	q.head = 0
}
