package leaderboard

import "sync"

// UpdateTypeLeaderboard tags a full board snapshot on the live feed.
const UpdateTypeLeaderboard = "leaderboard"

// Update is one message on the live feed.
type Update struct {
	Type   string  `json:"type"`
	Scores []Score `json:"scores"`
}

// Feed fans board updates out to websocket subscribers. Slow subscribers
// miss updates instead of blocking the sender.
type Feed struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan Update
	next        uint64
}

// NewFeed creates a feed with no subscribers.
func NewFeed() *Feed {
	return &Feed{subscribers: make(map[uint64]chan Update)}
}

// Subscribe registers a new subscriber and returns its id and channel.
func (f *Feed) Subscribe() (uint64, <-chan Update) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.next++
	ch := make(chan Update, 16)
	f.subscribers[f.next] = ch
	return f.next, ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (f *Feed) Unsubscribe(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if ch, ok := f.subscribers[id]; ok {
		close(ch)
		delete(f.subscribers, id)
	}
}

// Broadcast sends u to every subscriber without blocking.
func (f *Feed) Broadcast(u Update) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, ch := range f.subscribers {
		select {
		case ch <- u:
		default:
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (f *Feed) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subscribers)
}

// Close unsubscribes everyone.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for id, ch := range f.subscribers {
		close(ch)
		delete(f.subscribers, id)
	}
}
