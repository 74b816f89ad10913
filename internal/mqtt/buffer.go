package mqtt

import "log"

// bufferedMsg is a serialized message parked while the broker is away.
type bufferedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// ringBuffer parks outgoing messages during a disconnect, oldest-first,
// overwriting the oldest entry once full. Capacity is fixed at
// construction. Not safe for concurrent use — caller must synchronize.
type ringBuffer struct {
	items    []bufferedMsg
	capacity int
	write    int // index the next push lands on
	count    int
	dropped  bool // a push overwrote an entry since the last drain
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{
		items:    make([]bufferedMsg, capacity),
		capacity: capacity,
	}
}

func (r *ringBuffer) push(msg bufferedMsg) {
	if r.count == r.capacity {
		// Full: the write index sits on the oldest entry, so landing
		// here replaces it. Log once per disconnect, not per message.
		if !r.dropped {
			log.Printf("mqtt: offline buffer at capacity (%d), oldest messages will be lost", r.capacity)
			r.dropped = true
		}
		r.items[r.write] = msg
		r.write = (r.write + 1) % r.capacity
		return
	}
	r.items[r.write] = msg
	r.write = (r.write + 1) % r.capacity
	r.count++
}

// drainAll empties the buffer and returns its contents oldest-first.
func (r *ringBuffer) drainAll() []bufferedMsg {
	if r.count == 0 {
		return nil
	}

	out := make([]bufferedMsg, r.count)
	oldest := (r.write - r.count + r.capacity) % r.capacity
	for i := range out {
		out[i] = r.items[(oldest+i)%r.capacity]
	}

	r.count = 0
	r.write = 0
	r.dropped = false
	return out
}

func (r *ringBuffer) len() int {
	return r.count
}
