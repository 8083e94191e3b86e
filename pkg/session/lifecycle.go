package session

import "sync"

// Event is a host lifecycle notification.
type Event int

const (
	// EventInactive means the application left the foreground; camera
	// hardware must be released.
	EventInactive Event = iota
	// EventResumed means the application returned to the foreground.
	EventResumed
)

func (e Event) String() string {
	if e == EventInactive {
		return "inactive"
	}
	return "resumed"
}

// Notifier delivers lifecycle events to subscribers. Subscribe returns the
// event channel and a cleanup function; the caller must invoke the cleanup
// exactly once when it stops listening.
type Notifier interface {
	Subscribe() (<-chan Event, func())
}

// Broadcaster is a Notifier fed by Publish. It bridges host callbacks (e.g.
// GUI toolkit foreground/background hooks) into event channels.
type Broadcaster struct {
	mu      sync.RWMutex
	clients map[chan Event]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{clients: make(map[chan Event]struct{})}
}

func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	unsub := func() {
		b.mu.Lock()
		delete(b.clients, ch)
		b.mu.Unlock()
		close(ch)
	}
	return ch, unsub
}

// Publish fans the event out to all subscribers. Slow subscribers may miss
// events (non-blocking, buffered).
func (b *Broadcaster) Publish(ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}
