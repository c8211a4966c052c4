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

// Package ksync implements low-level synchronization primitives meant for
// use inside an operating system kernel or other freestanding environment:
// no thread scheduler, no heap allocator dependency, no ability to block a
// caller by yielding to an OS. Every execution context that contends for a
// lock in this package is either a CPU core or, on a single core, a
// preemptive interrupt handler; all of them communicate exclusively
// through shared memory and atomic operations.
//
// # Primitives
//
// Four lock-free control algorithms are provided, all built directly on
// sync/atomic:
//
//   - RawSpinMutex: a test-and-test-and-set spinlock with exponential
//     backoff (see Backoff).
//   - RawTicketMutex: a ticket lock providing FIFO fairness between
//     waiters.
//   - RawRWSpinLock: a multi-state readers/writer spinlock supporting
//     shared, exclusive, and upgradable-read holders, with atomic upgrade
//     and downgrade between them.
//   - RawInterruptMutex[T, PT]: a wrapper, generic over RawSpinMutex,
//     RawTicketMutex (or any other type satisfying RawMutex), that masks
//     hardware interrupts for the duration of the wrapped lock's critical
//     section, making it safe to acquire the same lock from both normal
//     and interrupt context on one hardware thread. RawInterruptRWLock[T, PT]
//     applies the same masking to a RawRWLock such as RawRWSpinLock.
//
// None of these block in the scheduler sense: every "wait" is a busy loop,
// paced by Backoff. There is no priority inheritance, no parking, no
// timeouts, and no deadlock detection. The RW lock is read-preferring: a
// continuous stream of readers can starve a writer or an upgrader.
//
// # Payload-bearing wrappers
//
// Mutex[S, PS, V] and RWLock[S, PS, V] bind one of the raw types above to
// a protected value of type V and hand out guards (MutexGuard, ReadGuard,
// WriteGuard, UpgradableReadGuard) whose Unlock releases the underlying
// raw lock. types.go spells out the full cross product of algorithm x
// interrupt-wrapper as named convenience types (SpinMutex[T],
// InterruptTicketMutex[T], RWSpinLock[T], InterruptRWSpinLock[T], ...).
package ksync
