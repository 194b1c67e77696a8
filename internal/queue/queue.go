// Package queue is the work list shared by the walker and the run loop.
// The walker fills it in one pass and hands it over; only the run loop
// drains it afterwards, so no locking is done.
package queue

type Queue struct {
	items []string
}

func New() *Queue {
	return &Queue{}
}

func (q *Queue) Push(path string) {
	q.items = append(q.items, path)
}

// Pop removes and returns the oldest entry. ok is false when the queue is empty.
func (q *Queue) Pop() (path string, ok bool) {
	if len(q.items) == 0 {
		return "", false
	}
	path = q.items[0]
	q.items[0] = ""
	q.items = q.items[1:]
	return path, true
}

func (q *Queue) Len() int {
	return len(q.items)
}

// Clear drops all remaining entries and reports how many were dropped.
func (q *Queue) Clear() int {
	n := len(q.items)
	q.items = nil
	return n
}

// Items returns a copy of the pending entries in queue order.
func (q *Queue) Items() []string {
	out := make([]string, len(q.items))
	copy(out, q.items)
	return out
}
