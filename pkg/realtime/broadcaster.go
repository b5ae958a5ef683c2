package realtime

import "sync"

// DefaultBuffer is the per-subscriber channel capacity used by Subscribe.
const DefaultBuffer = 16

// Broadcaster fans topic names out to subscribers. A subscriber that is not
// draining its channel misses topics rather than blocking the publisher; the
// next topic tells it to re-read state anyway.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[chan string]struct{}
	closed bool
}

// NewBroadcaster creates a broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan string]struct{})}
}

// Subscribe registers a subscriber with DefaultBuffer capacity.
func (b *Broadcaster) Subscribe() chan string {
	return b.SubscribeBuffered(DefaultBuffer)
}

// SubscribeBuffered registers a subscriber whose channel holds up to size
// undelivered topics. Subscribing to a closed broadcaster returns a closed channel.
func (b *Broadcaster) SubscribeBuffered(size int) chan string {
	if size < 1 {
		size = 1
	}
	ch := make(chan string, size)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	return ch
}

// Unsubscribe removes ch and closes it. Unknown channels are ignored.
func (b *Broadcaster) Unsubscribe(ch chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subs[ch]; !ok {
		return
	}
	delete(b.subs, ch)
	close(ch)
}

// Publish delivers each topic, in order, to every subscriber with room for it.
func (b *Broadcaster) Publish(topics ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		for _, topic := range topics {
			select {
			case ch <- topic:
			default:
			}
		}
	}
}

// Len reports the number of live subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close closes every subscriber channel. Later publishes are dropped.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		close(ch)
	}
	b.subs = make(map[chan string]struct{})
}
