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

// Mutex pairs a raw lock (S, accessed through its pointer type PS) with a
// protected value V, so the value can never be reached without first
// going through the lock — there is no stdlib or ecosystem equivalent of
// Rust's lock_api::Mutex/MutexGuard pairing to import, so this and
// MutexGuard are written out directly.
//
// S/PS follow the same split-constraint shape as RawInterruptMutex: S is
// the raw lock's value type, and PS its pointer type, so the lock lives
// inlined in the Mutex rather than behind a second allocation.
type Mutex[S any, PS rawMutexPtr[S], V any] struct {
	raw  S
	data V
}

// NewMutex wraps data in a Mutex, initially unlocked.
func NewMutex[S any, PS rawMutexPtr[S], V any](data V) *Mutex[S, PS, V] {
	return &Mutex[S, PS, V]{data: data}
}

// Lock blocks until the mutex is acquired and returns a guard granting
// access to the protected value. The guard must be unlocked exactly once.
func (m *Mutex[S, PS, V]) Lock() *MutexGuard[S, PS, V] {
	PS(&m.raw).Lock()
	return &MutexGuard[S, PS, V]{m: m}
}

// TryLock attempts to acquire the mutex without blocking.
func (m *Mutex[S, PS, V]) TryLock() (*MutexGuard[S, PS, V], bool) {
	if !PS(&m.raw).TryLock() {
		return nil, false
	}
	return &MutexGuard[S, PS, V]{m: m}, true
}

// IsLocked reports whether the mutex is currently held, by anyone.
func (m *Mutex[S, PS, V]) IsLocked() bool {
	return PS(&m.raw).IsLocked()
}

// MutexGuard grants access to a Mutex's protected value for as long as it
// is held. Calling Unlock more than once, or using a guard after Unlock,
// is a caller-contract violation.
type MutexGuard[S any, PS rawMutexPtr[S], V any] struct {
	m *Mutex[S, PS, V]
}

// Value returns a pointer to the protected data. The pointer must not be
// retained past Unlock.
func (g *MutexGuard[S, PS, V]) Value() *V {
	return &g.m.data
}

// Unlock releases the mutex.
func (g *MutexGuard[S, PS, V]) Unlock() {
	PS(&g.m.raw).Unlock()
	g.m = nil
}
