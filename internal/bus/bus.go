// Copyright 2024 The Monero Update authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bus provides the ordered notification channel between the update
// engine and its observers.
package bus

import (
	"sync"

	"k8s.io/klog/v2"

	"github.com/monero-ecosystem/monero-update/api"
)

// Bus fans typed events out to subscribers. Publication order is the
// delivery order on every subscriber channel.
type Bus struct {
	mu     sync.Mutex
	subs   []chan api.Event
	closed bool
}

// New returns an empty bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber and returns its channel. The channel
// is buffered; a subscriber which falls more than buffer events behind loses
// newer events rather than blocking the engine.
func (b *Bus) Subscribe(buffer int) <-chan api.Event {
	if buffer <= 0 {
		buffer = 256
	}
	ch := make(chan api.Event, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch
	}
	b.subs = append(b.subs, ch)
	return ch
}

// Publish delivers ev to all subscribers, preserving emission order.
func (b *Bus) Publish(ev api.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			klog.Warningf("bus: dropping event %T for slow subscriber", ev)
		}
	}
}

// Close closes all subscriber channels. Publish becomes a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}
