package audio

import (
	"runtime"
	"sync/atomic"

	"github.com/gopxl/beep"
)

// event is a streamer queued for playback. done is closed by the consumer
// once the streamer is drained.
type event struct {
	id       int
	streamer beep.Streamer
	done     chan struct{}
}

// eventBuffer is a lock-free spsc queue.
type eventBuffer struct {
	events      []event
	read, write *uint32
}

func newEventBuffer(size int) *eventBuffer {
	if size <= 0 || size&(size-1) != 0 {
		panic("event buffer size must be a power of 2")
	}
	return &eventBuffer{
		events: make([]event, size),
		read:   new(uint32),
		write:  new(uint32),
	}
}

// push blocks while the buffer is full.
func (b *eventBuffer) push(ev event) {
	for atomic.LoadUint32(b.write)-atomic.LoadUint32(b.read) == uint32(len(b.events)) {
		runtime.Gosched()
	}
	write := atomic.LoadUint32(b.write)
	b.events[write%uint32(len(b.events))] = ev
	atomic.StoreUint32(b.write, write+1)
}

// pop never blocks; ok is false when the buffer is empty.
func (b *eventBuffer) pop() (ev event, ok bool) {
	read := atomic.LoadUint32(b.read)
	if read == atomic.LoadUint32(b.write) {
		return ev, false
	}
	i := read % uint32(len(b.events))
	ev = b.events[i]
	b.events[i] = event{}
	atomic.StoreUint32(b.read, read+1)
	return ev, true
}
