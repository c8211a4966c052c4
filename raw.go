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

// RawMutex is the capability set every raw mutex in this package
// satisfies: RawSpinMutex, RawTicketMutex, OneShotMutex, and
// RawInterruptMutex[T, PT] for any T whose pointer type is itself a
// RawMutex. Mutex[S, PS, V] is generic over this interface.
//
// Lock never fails; it does not return until the lock is acquired (the
// spin and ticket mutexes spin, OneShotMutex blocks on a semaphore). TryLock never
// blocks. Unlock may only be called by the goroutine that successfully
// acquired the lock — mis-pairing is a caller-contract violation (see
// assert.go), not a recoverable error.
type RawMutex interface {
	Lock()
	TryLock() bool
	Unlock()
	IsLocked() bool
}

// RawMutexFair is satisfied by raw mutexes that can hand off the lock
// fairly to a waiter rather than let a freshly-arriving goroutine race for
// it. Only RawTicketMutex implements it.
type RawMutexFair interface {
	RawMutex
	// UnlockFair releases the lock the same way Unlock does, but is
	// named distinctly so a caller can express intent ("I want the next
	// queued waiter to get it") even where the implementation happens to
	// coincide with Unlock.
	UnlockFair()
	// Bump yields the lock to the next queued waiter and reacquires it,
	// if anyone else is waiting; otherwise it is a no-op. Equivalent to
	// UnlockFair(); Lock() but expressed as one call.
	Bump()
}

// RawRWLock is the capability set RawRWSpinLock satisfies: shared,
// exclusive and upgradable acquisition and release, atomic upgrade and
// downgrade between them, and the recursive-shared variants. RWLock[S, PS, V]
// is generic over this interface.
type RawRWLock interface {
	LockShared()
	TryLockShared() bool
	UnlockShared()

	LockExclusive()
	TryLockExclusive() bool
	UnlockExclusive()

	LockUpgradable()
	TryLockUpgradable() bool
	UnlockUpgradable()

	// Upgrade blocks until all shared holders have drained, then
	// atomically transitions the caller's upgradable-read hold into an
	// exclusive hold. The caller must already hold an upgradable read.
	Upgrade()
	// TryUpgrade attempts the same transition without blocking.
	TryUpgrade() bool

	Downgrade()
	DowngradeUpgradable()
	DowngradeToUpgradable()

	LockSharedRecursive()
	TryLockSharedRecursive() bool

	IsLocked() bool
	IsLockedExclusive() bool
}
