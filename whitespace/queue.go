package whitespace

import (
	"container/heap"

	"github.com/tsawler/pagelayout/model"
)

// entry is one candidate bound waiting in the search queue.
type entry struct {
	bound     model.Rectangle
	obstacles []model.Rectangle
	// seen is how many whitespace rectangles had been accepted when the
	// obstacles were last brought up to date.
	seen    int
	quality float64
	order   int
}

// queue is a max-heap on quality; equal qualities pop in insertion order.
type queue []*entry

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].quality != q[j].quality {
		return q[i].quality > q[j].quality
	}
	return q[i].order < q[j].order
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*entry)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return e
}

func (q *queue) push(e *entry) { heap.Push(q, e) }

func (q *queue) pop() *entry { return heap.Pop(q).(*entry) }
