package view

import (
	"sync"

	"github.com/ish/pocketledger/internal/adapter/http/dto"
)

// Bus broadcasts transaction edits to every subscriber. There are no topics:
// a listener that only cares about one transaction filters by id itself.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   []busSubscriber
}

type busSubscriber struct {
	id int
	fn func(*dto.TransactionResponse)
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns its unsubscribe func. Unsubscribing
// twice is harmless.
func (b *Bus) Subscribe(fn func(*dto.TransactionResponse)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, busSubscriber{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		for i, sub := range b.subs {
			if sub.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish synchronously invokes every subscriber in registration order.
func (b *Bus) Publish(tx *dto.TransactionResponse) {
	b.mu.Lock()
	subs := make([]busSubscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.fn(tx)
	}
}
