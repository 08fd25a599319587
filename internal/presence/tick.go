package presence

// TickQueue is a Scheduler whose deferred work runs on Flush. A frame loop
// flushes it once per frame.
type TickQueue struct {
	next    int
	order   []int
	pending map[int]func()
}

// NewTickQueue returns an empty queue.
func NewTickQueue() *TickQueue {
	return &TickQueue{pending: make(map[int]func())}
}

// Defer queues fn for the next Flush.
func (q *TickQueue) Defer(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	q.next++
	id := q.next
	q.pending[id] = fn
	q.order = append(q.order, id)
	return func() { delete(q.pending, id) }
}

// Len reports how much work is waiting.
func (q *TickQueue) Len() int {
	return len(q.pending)
}

// Flush runs the work queued before the call. Work deferred while flushing
// waits for the following Flush.
func (q *TickQueue) Flush() int {
	order := q.order
	q.order = nil
	ran := 0
	for _, id := range order {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn()
		ran++
	}
	return ran
}
