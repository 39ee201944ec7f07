package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrainEmpty(t *testing.T) {
	q := NewQueue()
	called := false
	n := q.Drain(func(Kind) { called = true })
	assert.Zero(t, n)
	assert.False(t, called)
}

func TestPushDrainFIFO(t *testing.T) {
	q := NewQueue()
	q.Push(Click)
	q.Push(Kind(7))
	q.Push(Click)
	assert.Equal(t, 3, q.Len())

	var got []Kind
	n := q.Drain(func(k Kind) { got = append(got, k) })

	assert.Equal(t, 3, n)
	assert.Equal(t, []Kind{Click, Kind(7), Click}, got)
	assert.Zero(t, q.Len())
	assert.Zero(t, q.Drain(func(Kind) { t.Fatal("queue should be empty after drain") }))
}

func TestOverflowKeepsNewest(t *testing.T) {
	q := NewQueue()
	for i := 0; i < Size+10; i++ {
		q.Push(Click)
	}
	assert.Equal(t, Size, q.Len())
	assert.Equal(t, Size, q.Drain(func(Kind) {}))
}

func TestConcurrentProducers(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 8; i++ {
				q.Push(Click)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 32, q.Drain(func(k Kind) { assert.Equal(t, Click, k) }))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "click", Click.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
