package sqlite

import "sync"

// changeFeed fans write notifications out to Watch subscribers. Each
// subscriber channel holds at most one pending signal, so bursts of writes
// coalesce into a single re-query.
type changeFeed struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

func newChangeFeed() *changeFeed {
	return &changeFeed{subs: make(map[int]chan struct{})}
}

func (f *changeFeed) subscribe() (<-chan struct{}, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := f.next
	f.next++
	ch := make(chan struct{}, 1)
	f.subs[id] = ch

	return ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.subs, id)
	}
}

func (f *changeFeed) notify() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
