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

// RWLock is RWLock[S, PS, V]'s payload-bearing counterpart to Mutex: a
// raw readers/writer lock (S via its pointer type PS) guarding a value V,
// with three guard types matching the lock's three holder classes.
type RWLock[S any, PS rawRWLockPtr[S], V any] struct {
	raw  S
	data V
}

// NewRWLock wraps data in an RWLock, initially unlocked.
func NewRWLock[S any, PS rawRWLockPtr[S], V any](data V) *RWLock[S, PS, V] {
	return &RWLock[S, PS, V]{data: data}
}

// Read blocks until a shared hold is acquired.
func (l *RWLock[S, PS, V]) Read() *ReadGuard[S, PS, V] {
	PS(&l.raw).LockShared()
	return &ReadGuard[S, PS, V]{l: l}
}

// TryRead attempts to acquire a shared hold without blocking.
func (l *RWLock[S, PS, V]) TryRead() (*ReadGuard[S, PS, V], bool) {
	if !PS(&l.raw).TryLockShared() {
		return nil, false
	}
	return &ReadGuard[S, PS, V]{l: l}, true
}

// Write blocks until an exclusive hold is acquired.
func (l *RWLock[S, PS, V]) Write() *WriteGuard[S, PS, V] {
	PS(&l.raw).LockExclusive()
	return &WriteGuard[S, PS, V]{l: l}
}

// TryWrite attempts to acquire an exclusive hold without blocking.
func (l *RWLock[S, PS, V]) TryWrite() (*WriteGuard[S, PS, V], bool) {
	if !PS(&l.raw).TryLockExclusive() {
		return nil, false
	}
	return &WriteGuard[S, PS, V]{l: l}, true
}

// UpgradableRead blocks until the upgradable-read hold is acquired.
func (l *RWLock[S, PS, V]) UpgradableRead() *UpgradableReadGuard[S, PS, V] {
	PS(&l.raw).LockUpgradable()
	return &UpgradableReadGuard[S, PS, V]{l: l}
}

// TryUpgradableRead attempts to acquire the upgradable-read hold without
// blocking.
func (l *RWLock[S, PS, V]) TryUpgradableRead() (*UpgradableReadGuard[S, PS, V], bool) {
	if !PS(&l.raw).TryLockUpgradable() {
		return nil, false
	}
	return &UpgradableReadGuard[S, PS, V]{l: l}, true
}

// IsLocked reports whether the lock is held in any state at all.
func (l *RWLock[S, PS, V]) IsLocked() bool {
	return PS(&l.raw).IsLocked()
}

// IsLockedExclusive reports whether a writer currently holds the lock.
func (l *RWLock[S, PS, V]) IsLockedExclusive() bool {
	return PS(&l.raw).IsLockedExclusive()
}

// ReadGuard grants shared access to an RWLock's protected value.
type ReadGuard[S any, PS rawRWLockPtr[S], V any] struct {
	l *RWLock[S, PS, V]
}

// Value returns a pointer to the protected data, valid until Unlock.
func (g *ReadGuard[S, PS, V]) Value() *V {
	return &g.l.data
}

// Unlock releases the shared hold.
func (g *ReadGuard[S, PS, V]) Unlock() {
	PS(&g.l.raw).UnlockShared()
	g.l = nil
}

// WriteGuard grants exclusive access to an RWLock's protected value.
type WriteGuard[S any, PS rawRWLockPtr[S], V any] struct {
	l *RWLock[S, PS, V]
}

// Value returns a pointer to the protected data, valid until Unlock.
func (g *WriteGuard[S, PS, V]) Value() *V {
	return &g.l.data
}

// Unlock releases the exclusive hold.
func (g *WriteGuard[S, PS, V]) Unlock() {
	PS(&g.l.raw).UnlockExclusive()
	g.l = nil
}

// Downgrade atomically turns the exclusive hold into a shared hold,
// consuming the write guard and returning a read guard in its place.
func (g *WriteGuard[S, PS, V]) Downgrade() *ReadGuard[S, PS, V] {
	l := g.l
	PS(&l.raw).Downgrade()
	g.l = nil
	return &ReadGuard[S, PS, V]{l: l}
}

// DowngradeToUpgradable atomically turns the exclusive hold into an
// upgradable-read hold, consuming the write guard.
func (g *WriteGuard[S, PS, V]) DowngradeToUpgradable() *UpgradableReadGuard[S, PS, V] {
	l := g.l
	PS(&l.raw).DowngradeToUpgradable()
	g.l = nil
	return &UpgradableReadGuard[S, PS, V]{l: l}
}

// UpgradableReadGuard grants shared access to an RWLock's protected value
// while reserving the right to become the sole writer.
type UpgradableReadGuard[S any, PS rawRWLockPtr[S], V any] struct {
	l *RWLock[S, PS, V]
}

// Value returns a pointer to the protected data, valid until Unlock.
func (g *UpgradableReadGuard[S, PS, V]) Value() *V {
	return &g.l.data
}

// Unlock releases the upgradable-read hold.
func (g *UpgradableReadGuard[S, PS, V]) Unlock() {
	PS(&g.l.raw).UnlockUpgradable()
	g.l = nil
}

// Upgrade blocks until every shared reader has drained, then consumes the
// upgradable-read guard and returns a write guard in its place.
func (g *UpgradableReadGuard[S, PS, V]) Upgrade() *WriteGuard[S, PS, V] {
	l := g.l
	PS(&l.raw).Upgrade()
	g.l = nil
	return &WriteGuard[S, PS, V]{l: l}
}

// TryUpgrade attempts the same transition without blocking.
func (g *UpgradableReadGuard[S, PS, V]) TryUpgrade() (*WriteGuard[S, PS, V], bool) {
	if !PS(&g.l.raw).TryUpgrade() {
		return nil, false
	}
	l := g.l
	g.l = nil
	return &WriteGuard[S, PS, V]{l: l}, true
}

// Downgrade atomically turns the upgradable-read hold into a plain shared
// hold, consuming the upgradable-read guard.
func (g *UpgradableReadGuard[S, PS, V]) Downgrade() *ReadGuard[S, PS, V] {
	l := g.l
	PS(&l.raw).DowngradeUpgradable()
	g.l = nil
	return &ReadGuard[S, PS, V]{l: l}
}
