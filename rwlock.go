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
	"math"
	"sync/atomic"
)

// RawRWSpinLock is a spinning, read-preferring readers/writer lock with
// four coexistence classes packed into one atomic word:
//
//	bit 0      EXCLUSIVE    a writer holds the lock
//	bit 1      UPGRADABLE   an upgradable reader holds the lock
//	bits 2..63 SHARED_COUNT number of plain readers, scaled by shared
//
// This packing — several holder-class fields sharing one machine word,
// each read and written through small extract/set helpers under a CAS or
// fetch-* retry — is the same technique go-ilock's Mutex uses for its S /
// X / IS / IX counters, here retargeted from four disjoint bitfields to
// three fields where SHARED_COUNT occupies the high bits and EXCLUSIVE/
// UPGRADABLE are flags rather than counts.
//
// The zero value is unlocked and ready to use. The lock is
// read-preferring: a writer spinning in LockExclusive does not block an
// arriving reader, so a continuous stream of readers can starve a writer
// or an in-progress Upgrade.
type RawRWSpinLock struct {
	word atomic.Uint64
}

const (
	exclusive  uint64 = 1
	upgradable uint64 = 1 << 1
	shared     uint64 = 1 << 2
)

// sharedOverflowThreshold mirrors the reference algorithm's usize::MAX/2
// cap: an arbitrary but generous ceiling that lets acquireShared() detect
// runaway reader leakage long before SHARED_COUNT could wrap the word.
const sharedOverflowThreshold = math.MaxUint64 / 2

var _ RawRWLock = (*RawRWSpinLock)(nil)

// fetchOr applies bits with a bitwise OR to word and returns the value
// word held immediately beforehand. sync/atomic's typed Uint64 wrapper
// doesn't expose a fetch-or primitive directly, so this retries a CAS the
// same way go-ilock's registerX/registerS family does for its own
// per-state counter fields.
func (l *RawRWSpinLock) fetchOr(bits uint64) uint64 {
	for {
		old := l.word.Load()
		if l.word.CompareAndSwap(old, old|bits) {
			return old
		}
	}
}

// fetchAnd applies bits with a bitwise AND to word and returns the value
// word held immediately beforehand.
func (l *RawRWSpinLock) fetchAnd(bits uint64) uint64 {
	for {
		old := l.word.Load()
		if l.word.CompareAndSwap(old, old&bits) {
			return old
		}
	}
}

// fetchXor applies bits with a bitwise XOR to word and returns the value
// word held immediately beforehand.
func (l *RawRWSpinLock) fetchXor(bits uint64) uint64 {
	for {
		old := l.word.Load()
		if l.word.CompareAndSwap(old, old^bits) {
			return old
		}
	}
}

func isLockedShared(word uint64) bool {
	return word&^(exclusive|upgradable) != 0
}

func isLockedUpgradable(word uint64) bool {
	return word&upgradable == upgradable
}

// acquireShared optimistically adds one shared holder and returns the
// word observed *before* the add, panicking if that would overflow
// SHARED_COUNT. The common case — no writer present — pays for exactly
// one atomic operation; callers roll the add back themselves if it turns
// out to be incompatible with the previous holder.
func (l *RawRWSpinLock) acquireShared() uint64 {
	prev := l.word.Add(shared) - shared

	if prev > sharedOverflowThreshold {
		l.word.Add(^uint64(shared - 1))
		panic("ksync: too many shared locks on RawRWSpinLock, cannot safely proceed")
	}

	return prev
}

// LockShared acquires a plain shared (reader) hold, spinning with backoff
// until TryLockShared succeeds.
func (l *RawRWSpinLock) LockShared() {
	b := NewBackoff()
	for !l.TryLockShared() {
		b.Snooze()
	}
}

// TryLockShared attempts to acquire a shared hold without blocking. It
// fails only if a writer currently holds the lock; an upgradable reader
// does not block incoming shared readers.
func (l *RawRWSpinLock) TryLockShared() bool {
	prev := l.acquireShared()

	acquired := prev&exclusive != exclusive
	if !acquired {
		l.UnlockShared()
	}

	return acquired
}

// UnlockShared releases one shared hold. The caller must hold at least
// one.
func (l *RawRWSpinLock) UnlockShared() {
	assert(isLockedShared(l.word.Load()), "UnlockShared called without a shared hold on RawRWSpinLock")
	l.word.Add(^uint64(shared - 1))
}

// LockExclusive acquires an exclusive (writer) hold, spinning with
// backoff until the entire word is free.
func (l *RawRWSpinLock) LockExclusive() {
	b := NewBackoff()
	for !l.word.CompareAndSwap(0, exclusive) {
		b.Snooze()
	}
}

// TryLockExclusive attempts to acquire an exclusive hold without blocking;
// it requires the whole word to be zero (no readers, no upgradable
// reader, no other writer).
func (l *RawRWSpinLock) TryLockExclusive() bool {
	return l.word.CompareAndSwap(0, exclusive)
}

// UnlockExclusive releases the exclusive hold. The caller must hold it.
func (l *RawRWSpinLock) UnlockExclusive() {
	assert(l.IsLockedExclusive(), "UnlockExclusive called without an exclusive hold on RawRWSpinLock")
	l.fetchAnd(^exclusive)
}

// IsLocked reports whether the lock is held in any state at all.
func (l *RawRWSpinLock) IsLocked() bool {
	return l.word.Load() != 0
}

// IsLockedExclusive reports whether a writer currently holds the lock.
func (l *RawRWSpinLock) IsLockedExclusive() bool {
	return l.word.Load()&exclusive == exclusive
}

// LockUpgradable acquires the upgradable-read hold, spinning with backoff
// until TryLockUpgradable succeeds.
func (l *RawRWSpinLock) LockUpgradable() {
	b := NewBackoff()
	for !l.TryLockUpgradable() {
		b.Snooze()
	}
}

// TryLockUpgradable attempts to acquire the upgradable-read hold without
// blocking. At most one upgradable reader may hold the lock at a time, but
// it may coexist with any number of plain shared readers.
//
// The rollback on failure is deliberately asymmetric, matching the
// reference algorithm exactly: if the previous word already had
// UPGRADABLE set by someone else, the fetch-or this call just performed
// didn't actually change anything the other holder can observe, so there
// is nothing to roll back. Rollback is only needed when the previous word
// had EXCLUSIVE set (a writer), because in that case this call's fetch-or
// really did publish UPGRADABLE and must retract it.
func (l *RawRWSpinLock) TryLockUpgradable() bool {
	prev := l.fetchOr(upgradable)

	acquired := prev&(upgradable|exclusive) == 0
	if !acquired && prev&upgradable == 0 {
		l.UnlockUpgradable()
	}

	return acquired
}

// UnlockUpgradable releases the upgradable-read hold. The caller must hold
// it.
func (l *RawRWSpinLock) UnlockUpgradable() {
	assert(isLockedUpgradable(l.word.Load()), "UnlockUpgradable called without an upgradable hold on RawRWSpinLock")
	l.fetchAnd(^upgradable)
}

// Upgrade blocks until every plain shared reader has drained, then
// atomically turns the caller's upgradable-read hold into an exclusive
// hold. The caller must already hold the upgradable-read lock.
//
// A plain LockShared arriving while Upgrade spins can still succeed, since
// EXCLUSIVE is not yet set — meaning a continuous stream of readers can
// starve an upgrader. This matches the reference algorithm and is a known
// property of the read-preferring design, not a bug.
func (l *RawRWSpinLock) Upgrade() {
	assert(isLockedUpgradable(l.word.Load()), "Upgrade called without an upgradable hold on RawRWSpinLock")
	b := NewBackoff()
	for !l.word.CompareAndSwap(upgradable, exclusive) {
		b.Snooze()
	}
}

// TryUpgrade attempts the upgradable-to-exclusive transition without
// blocking; it only succeeds when SHARED_COUNT is already zero.
func (l *RawRWSpinLock) TryUpgrade() bool {
	assert(isLockedUpgradable(l.word.Load()), "TryUpgrade called without an upgradable hold on RawRWSpinLock")
	return l.word.CompareAndSwap(upgradable, exclusive)
}

// Downgrade atomically turns the caller's exclusive hold into a plain
// shared hold. The new reader slot is published before EXCLUSIVE is
// cleared, so no window exists where the lock looks unheld.
func (l *RawRWSpinLock) Downgrade() {
	l.acquireShared()
	l.UnlockExclusive()
}

// DowngradeUpgradable atomically turns the caller's upgradable-read hold
// into a plain shared hold.
func (l *RawRWSpinLock) DowngradeUpgradable() {
	l.acquireShared()
	l.UnlockUpgradable()
}

// DowngradeToUpgradable atomically turns the caller's exclusive hold into
// an upgradable-read hold, in one fetch-xor of both flag bits (since an
// exclusive holder has EXCLUSIVE set and UPGRADABLE clear, xor-ing both
// flips exactly that pair).
func (l *RawRWSpinLock) DowngradeToUpgradable() {
	assert(l.IsLockedExclusive(), "DowngradeToUpgradable called without an exclusive hold on RawRWSpinLock")
	l.fetchXor(upgradable | exclusive)
}

// LockSharedRecursive is identical to LockShared: SHARED_COUNT already
// supports any number of concurrent holders, recursive or otherwise, so
// there is nothing extra to track.
func (l *RawRWSpinLock) LockSharedRecursive() {
	l.LockShared()
}

// TryLockSharedRecursive is identical to TryLockShared.
func (l *RawRWSpinLock) TryLockSharedRecursive() bool {
	return l.TryLockShared()
}
