package queue

import (
	"testing"

	. "github.com/ava12/grammatic/internal/test"
)

func TestEmpty(t *testing.T) {
	q := New[int]()
	Assert(t, q.IsEmpty(), "expecting empty queue")
	ExpectInt(t, minCap, len(q.items))
	_, ok := q.First()
	ExpectBool(t, false, ok)
}

func TestPrefilled(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	q := New(items...)
	ExpectInt(t, 5, q.Len())
	ExpectInt(t, minCap<<1, len(q.items))
	for i, item := range q.Items() {
		ExpectInt(t, items[i], item)
	}
}

func TestOrder(t *testing.T) {
	q := New(1, 2, 3)
	model := []int{1, 2, 3}
	for i := 4; i <= 20; i++ {
		first, ok := q.First()
		ExpectBool(t, true, ok)
		ExpectInt(t, model[0], first)
		model = append(model[1:], i, i+100)
		q.Append(i, i+100)
		ExpectInt(t, len(model), q.Len())
	}

	items := q.Items()
	ExpectInt(t, len(model), len(items))
	for i, item := range items {
		ExpectInt(t, model[i], item)
	}
}

func TestWrapAround(t *testing.T) {
	q := New[string]()
	q.Append("a", "b", "c")
	q.First()
	q.First()
	q.Append("d", "e", "f")
	ExpectInt(t, minCap, len(q.items))
	q.Append("g")
	ExpectInt(t, minCap<<1, len(q.items))

	expected := []string{"c", "d", "e", "f", "g"}
	for _, e := range expected {
		s, ok := q.First()
		ExpectBool(t, true, ok)
		ExpectString(t, e, s)
	}
	Assert(t, q.IsEmpty(), "expecting empty queue")
}
