// Copyright 2020 Nathan Taylor (nbtaylor@gmail.com)
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package ksync

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// OneShotMutex is a RawMutex that can be acquired and released exactly
// once: after its first Unlock, every subsequent TryLock unconditionally
// fails, and every subsequent Lock blocks forever. It exists to exercise
// RawInterruptMutex against a collaborator that is not itself spin-based —
// acquisition blocks on golang.org/x/sync/semaphore.Weighted rather than
// busy-waiting.
//
// There is no zero-value form: callers must use NewOneShotMutex. Because
// Mutex[S, PS, V] starts from a zero raw lock, a Mutex over OneShotMutex
// built with NewMutex has no semaphore and panics on first use.
type OneShotMutex struct {
	sem    *semaphore.Weighted
	locked atomic.Bool
	spent  atomic.Bool
}

var _ RawMutex = (*OneShotMutex)(nil)

// NewOneShotMutex returns a ready-to-use, unheld OneShotMutex.
func NewOneShotMutex() *OneShotMutex {
	return &OneShotMutex{sem: semaphore.NewWeighted(1)}
}

// Lock blocks until the mutex's single permit is available. It can only
// ever succeed once in the lifetime of the mutex.
func (m *OneShotMutex) Lock() {
	// Weighted.Acquire only returns an error if the context is cancelled;
	// context.Background() never is.
	_ = m.sem.Acquire(context.Background(), 1)
	if m.spent.Load() {
		// Already retired: keep the permit and never return.
		select {}
	}
	m.locked.Store(true)
}

// TryLock attempts to claim the mutex's one permit without blocking. Once
// the mutex has been unlocked a single time, TryLock always returns
// false, even though the underlying semaphore would otherwise allow
// re-acquisition.
func (m *OneShotMutex) TryLock() bool {
	if m.spent.Load() {
		return false
	}
	if !m.sem.TryAcquire(1) {
		return false
	}
	m.locked.Store(true)
	return true
}

// Unlock releases the permit and permanently retires the mutex.
func (m *OneShotMutex) Unlock() {
	assert(m.locked.Load(), "Unlock called on a OneShotMutex that is not held")
	m.spent.Store(true)
	m.locked.Store(false)
	m.sem.Release(1)
}

// IsLocked reports whether the mutex's one permit is currently held.
func (m *OneShotMutex) IsLocked() bool {
	return m.locked.Load()
}
