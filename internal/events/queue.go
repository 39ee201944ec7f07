package events

import "sync/atomic"

// Kind identifies what happened. Events carry no payload.
type Kind uint8

const (
	// Click is a completed primary-button click on the scene (not a drag and
	// not captured by the debug panel).
	Click Kind = iota + 1
)

func (k Kind) String() string {
	switch k {
	case Click:
		return "click"
	default:
		return "unknown"
	}
}

// Size is the queue capacity. It must be a power of two.
const Size = 64

const mask = Size - 1

// Queue is a lock-free multi-producer, single-consumer ring of input events.
// Input callbacks Push; the update loop Drains once per tick.
//
// Overflow: the oldest undrained events are overwritten.
type Queue struct {
	events    [Size]Kind
	published [Size]atomic.Bool
	head      atomic.Uint64
	tail      atomic.Uint64
}

func NewQueue() *Queue {
	return &Queue{}
}

// Push appends an event. Safe for concurrent producers.
func (q *Queue) Push(kind Kind) {
	for {
		tail := q.tail.Load()
		next := tail + 1
		if !q.tail.CompareAndSwap(tail, next) {
			continue
		}
		idx := tail & mask
		q.events[idx] = kind
		q.published[idx].Store(true) // must follow the write

		head := q.head.Load()
		if next-head > Size {
			q.head.CompareAndSwap(head, next-Size)
		}
		return
	}
}

// Drain calls fn for every pending event in FIFO order and returns how many
// were delivered. Only one goroutine may drain.
func (q *Queue) Drain(fn func(Kind)) int {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		if tail == head {
			return 0
		}

		avail := tail - head
		if avail > Size {
			avail = Size
			head = tail - Size
		}

		var batch [Size]Kind
		n := uint64(0)
		for ; n < avail; n++ {
			idx := (head + n) & mask
			if !q.published[idx].Load() {
				break // writer not finished
			}
			batch[n] = q.events[idx]
			q.published[idx].Store(false)
		}

		if q.head.CompareAndSwap(head, head+n) {
			for i := uint64(0); i < n; i++ {
				fn(batch[i])
			}
			return int(n)
		}
	}
}

// Len is the approximate number of pending events.
func (q *Queue) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	if d := tail - head; d < Size {
		return int(d)
	}
	return Size
}
