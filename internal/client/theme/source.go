package theme

import (
	"slices"
	"sync"
)

// SchemeSource reports the operating environment's color-scheme preference
// and notifies subscribers when it changes.
type SchemeSource interface {
	PrefersDark() bool
	// Subscribe registers fn for change notifications and returns a function
	// that removes it.
	Subscribe(fn func(dark bool)) (unsubscribe func())
}

// Broadcaster is a SchemeSource whose value is set by its owner. Subscribers
// are called synchronously, without the lock held, only when the value
// actually changes.
type Broadcaster struct {
	mu   sync.RWMutex
	dark bool
	next int
	subs map[int]func(bool)
}

func NewBroadcaster(dark bool) *Broadcaster {
	return &Broadcaster{dark: dark, subs: map[int]func(bool){}}
}

func (b *Broadcaster) PrefersDark() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dark
}

func (b *Broadcaster) Subscribe(fn func(dark bool)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
		})
	}
}

// Set records dark and notifies subscribers if it differs from the current
// value. It reports whether a change happened.
func (b *Broadcaster) Set(dark bool) bool {
	b.mu.Lock()
	if b.dark == dark {
		b.mu.Unlock()
		return false
	}
	b.dark = dark
	ids := make([]int, 0, len(b.subs))
	for id := range b.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(bool), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
	return true
}

func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
