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

import "sync/atomic"

// RawSpinMutex is a test-and-test-and-set spinlock with exponential
// backoff. The zero value is unlocked and ready to use.
//
// Lock never fails: a waiter spins forever until it acquires the lock.
// The inner wait loop only reads the lock word (never attempting the CAS
// again until it observes the word go false), which is what keeps this a
// TTAS lock rather than a plain spin-CAS loop: many cores spinning on a
// read-only cache line produce far less coherence traffic than many cores
// hammering a CAS on the same line.
type RawSpinMutex struct {
	locked atomic.Bool
}

var _ RawMutex = (*RawSpinMutex)(nil)

// Lock acquires the mutex, spinning with backoff until it succeeds.
func (m *RawSpinMutex) Lock() {
	for !m.locked.CompareAndSwap(false, true) {
		b := NewBackoff()
		for m.locked.Load() {
			b.Snooze()
		}
	}
}

// TryLock attempts to acquire the mutex without blocking and reports
// whether it succeeded. On failure it has no side effect.
func (m *RawSpinMutex) TryLock() bool {
	return m.locked.CompareAndSwap(false, true)
}

// Unlock releases the mutex. The caller must hold it.
func (m *RawSpinMutex) Unlock() {
	assert(m.locked.Load(), "Unlock called on a RawSpinMutex that is not held")
	m.locked.Store(false)
}

// IsLocked reports whether the mutex is currently held, by anyone.
func (m *RawSpinMutex) IsLocked() bool {
	return m.locked.Load()
}
