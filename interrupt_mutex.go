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

// rawMutexPtr lets a generic type hold a T by value (so its zero value
// needs no initialization) while still calling T's pointer-receiver
// RawMutex methods. Go has no way to say "the type parameter's pointer
// type implements this interface" directly, so the constraint is split
// across two parameters: the value type and its pointer, the latter
// required to satisfy RawMutex. This is the standard workaround for
// generic code over pointer-receiver methods.
type rawMutexPtr[T any] interface {
	*T
	RawMutex
}

// RawInterruptMutex wraps any inner raw mutex and disables hardware
// interrupts for the duration of every successful critical section,
// making the wrapped lock safe to acquire from both normal and interrupt
// context on the same hardware thread. It composes identically with
// RawSpinMutex, RawTicketMutex, or OneShotMutex — see
// interrupt_mutex_test.go.
//
// T is instantiated with the underlying lock's value type and PT with its
// pointer type, e.g. RawInterruptMutex[RawSpinMutex, *RawSpinMutex]; the
// type aliases in types.go spell this out once so callers never have to.
type RawInterruptMutex[T any, PT rawMutexPtr[T]] struct {
	inner      T
	savedFlags atomic.Uint32
}

var _ RawMutex = (*RawInterruptMutex[RawSpinMutex, *RawSpinMutex])(nil)

func (m *RawInterruptMutex[T, PT]) Lock() {
	flags := ReadAndDisable()
	PT(&m.inner).Lock()
	// This store piggybacks on the inner lock's own Acquire; nothing
	// outside the critical section can observe savedFlags until Unlock
	// publishes it via the inner mutex's release.
	m.savedFlags.Store(uint32(flags))
}

func (m *RawInterruptMutex[T, PT]) TryLock() bool {
	flags := ReadAndDisable()
	if !PT(&m.inner).TryLock() {
		Restore(flags)
		return false
	}
	m.savedFlags.Store(uint32(flags))
	return true
}

func (m *RawInterruptMutex[T, PT]) Unlock() {
	flags := Flags(m.savedFlags.Swap(uint32(DisabledSentinel)))
	PT(&m.inner).Unlock()
	// Interrupts are only re-enabled after the inner mutex is released:
	// an interrupt that fires between "re-enabled" and "released" and
	// tries to take the same lock on this hardware thread would
	// otherwise deadlock against itself.
	Restore(flags)
}

func (m *RawInterruptMutex[T, PT]) IsLocked() bool {
	return PT(&m.inner).IsLocked()
}

// rawRWLockPtr is rawMutexPtr's counterpart for RawRWLock-shaped types.
type rawRWLockPtr[T any] interface {
	*T
	RawRWLock
}

// RawInterruptRWLock extends the interrupt-masking composition of
// RawInterruptMutex to readers/writer locks. This is not present in the
// reference algorithm (which only composes C6 with mutexes) but nothing
// in its Non-goals excludes it, and the same saved-flags swap/restore
// ordering applies unchanged to every RawRWLock acquisition path.
type RawInterruptRWLock[T any, PT rawRWLockPtr[T]] struct {
	inner T

	sharedFlags     atomic.Uint32
	sharedHolders   atomic.Int64
	exclusiveFlags  atomic.Uint32
	upgradableFlags atomic.Uint32
}

var _ RawRWLock = (*RawInterruptRWLock[RawRWSpinLock, *RawRWSpinLock])(nil)

// Shared holders don't have an inherent release order, so unlike the
// single-holder mutex case, RawInterruptRWLock can't keep exactly one
// saved-flags slot for every shared holder. Instead, the *first* shared
// acquirer on this hardware thread disables interrupts and the *last* one
// to release re-enables them, tracked with a holder count; only one
// goroutine can be "first" or "last" because reaching zero is itself
// serialized by the fetch-add/fetch-sub below.

func (l *RawInterruptRWLock[T, PT]) LockShared() {
	flags := ReadAndDisable()
	PT(&l.inner).LockShared()
	l.publishSharedFlags(flags)
}

func (l *RawInterruptRWLock[T, PT]) TryLockShared() bool {
	flags := ReadAndDisable()
	if !PT(&l.inner).TryLockShared() {
		Restore(flags)
		return false
	}
	l.publishSharedFlags(flags)
	return true
}

func (l *RawInterruptRWLock[T, PT]) publishSharedFlags(flags Flags) {
	if l.sharedHolders.Add(1) == 1 {
		l.sharedFlags.Store(uint32(flags))
	}
	// Any holder after the first disabled interrupts redundantly; its
	// flags are simply dropped, restored only once the first holder's
	// flags are swapped out in UnlockShared.
}

func (l *RawInterruptRWLock[T, PT]) UnlockShared() {
	last := l.sharedHolders.Add(-1) == 0
	PT(&l.inner).UnlockShared()
	if last {
		Restore(Flags(l.sharedFlags.Swap(uint32(DisabledSentinel))))
	}
}

func (l *RawInterruptRWLock[T, PT]) LockExclusive() {
	flags := ReadAndDisable()
	PT(&l.inner).LockExclusive()
	l.exclusiveFlags.Store(uint32(flags))
}

func (l *RawInterruptRWLock[T, PT]) TryLockExclusive() bool {
	flags := ReadAndDisable()
	if !PT(&l.inner).TryLockExclusive() {
		Restore(flags)
		return false
	}
	l.exclusiveFlags.Store(uint32(flags))
	return true
}

func (l *RawInterruptRWLock[T, PT]) UnlockExclusive() {
	flags := Flags(l.exclusiveFlags.Swap(uint32(DisabledSentinel)))
	PT(&l.inner).UnlockExclusive()
	Restore(flags)
}

func (l *RawInterruptRWLock[T, PT]) LockUpgradable() {
	flags := ReadAndDisable()
	PT(&l.inner).LockUpgradable()
	l.upgradableFlags.Store(uint32(flags))
}

func (l *RawInterruptRWLock[T, PT]) TryLockUpgradable() bool {
	flags := ReadAndDisable()
	if !PT(&l.inner).TryLockUpgradable() {
		Restore(flags)
		return false
	}
	l.upgradableFlags.Store(uint32(flags))
	return true
}

func (l *RawInterruptRWLock[T, PT]) UnlockUpgradable() {
	flags := Flags(l.upgradableFlags.Swap(uint32(DisabledSentinel)))
	PT(&l.inner).UnlockUpgradable()
	Restore(flags)
}

func (l *RawInterruptRWLock[T, PT]) Upgrade() {
	PT(&l.inner).Upgrade()
	// The upgradable holder's saved flags remain correct: the caller
	// already disabled interrupts when it acquired the upgradable hold,
	// and Upgrade doesn't release that hold, it transforms it in place.
	l.exclusiveFlags.Store(l.upgradableFlags.Swap(uint32(DisabledSentinel)))
}

func (l *RawInterruptRWLock[T, PT]) TryUpgrade() bool {
	if !PT(&l.inner).TryUpgrade() {
		return false
	}
	l.exclusiveFlags.Store(l.upgradableFlags.Swap(uint32(DisabledSentinel)))
	return true
}

func (l *RawInterruptRWLock[T, PT]) Downgrade() {
	PT(&l.inner).Downgrade()
	flags := l.exclusiveFlags.Swap(uint32(DisabledSentinel))
	if l.sharedHolders.Add(1) == 1 {
		l.sharedFlags.Store(flags)
	}
}

func (l *RawInterruptRWLock[T, PT]) DowngradeUpgradable() {
	PT(&l.inner).DowngradeUpgradable()
	flags := l.upgradableFlags.Swap(uint32(DisabledSentinel))
	if l.sharedHolders.Add(1) == 1 {
		l.sharedFlags.Store(flags)
	}
}

func (l *RawInterruptRWLock[T, PT]) DowngradeToUpgradable() {
	PT(&l.inner).DowngradeToUpgradable()
	l.upgradableFlags.Store(l.exclusiveFlags.Swap(uint32(DisabledSentinel)))
}

func (l *RawInterruptRWLock[T, PT]) LockSharedRecursive() {
	l.LockShared()
}

func (l *RawInterruptRWLock[T, PT]) TryLockSharedRecursive() bool {
	return l.TryLockShared()
}

func (l *RawInterruptRWLock[T, PT]) IsLocked() bool {
	return PT(&l.inner).IsLocked()
}

func (l *RawInterruptRWLock[T, PT]) IsLockedExclusive() bool {
	return PT(&l.inner).IsLockedExclusive()
}
