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

// The type declarations below spell out the raw-lock/payload cross
// product once so callers never juggle the S/PS split-constraint pair
// themselves. The raw interrupt-masking combinations take no type
// parameter and are ordinary type aliases. Go didn't gain generic type
// aliases (type X[T any] = ...) until well after this module's declared
// language version, so the payload-bearing types are plain struct
// embeddings rather than aliases — a one-field wrapper whose methods are
// promoted from the embedded generic instantiation.

// RawInterruptSpinMutex masks interrupts around a RawSpinMutex.
type RawInterruptSpinMutex = RawInterruptMutex[RawSpinMutex, *RawSpinMutex]

// RawInterruptTicketMutex masks interrupts around a RawTicketMutex.
type RawInterruptTicketMutex = RawInterruptMutex[RawTicketMutex, *RawTicketMutex]

// RawInterruptRWSpinLock masks interrupts around a RawRWSpinLock.
type RawInterruptRWSpinLock = RawInterruptRWLock[RawRWSpinLock, *RawRWSpinLock]

// SpinMutex pairs a RawSpinMutex with a protected value of type T.
type SpinMutex[T any] struct {
	Mutex[RawSpinMutex, *RawSpinMutex, T]
}

// NewSpinMutex wraps data in a SpinMutex, initially unlocked.
func NewSpinMutex[T any](data T) *SpinMutex[T] {
	return &SpinMutex[T]{Mutex: Mutex[RawSpinMutex, *RawSpinMutex, T]{data: data}}
}

// TicketMutex pairs a RawTicketMutex with a protected value of type T.
type TicketMutex[T any] struct {
	Mutex[RawTicketMutex, *RawTicketMutex, T]
}

// NewTicketMutex wraps data in a TicketMutex, initially unlocked.
func NewTicketMutex[T any](data T) *TicketMutex[T] {
	return &TicketMutex[T]{Mutex: Mutex[RawTicketMutex, *RawTicketMutex, T]{data: data}}
}

// InterruptSpinMutex pairs an interrupt-masking RawSpinMutex with a
// protected value of type T.
type InterruptSpinMutex[T any] struct {
	Mutex[RawInterruptSpinMutex, *RawInterruptSpinMutex, T]
}

// NewInterruptSpinMutex wraps data in an InterruptSpinMutex, initially
// unlocked.
func NewInterruptSpinMutex[T any](data T) *InterruptSpinMutex[T] {
	return &InterruptSpinMutex[T]{Mutex: Mutex[RawInterruptSpinMutex, *RawInterruptSpinMutex, T]{data: data}}
}

// InterruptTicketMutex pairs an interrupt-masking RawTicketMutex with a
// protected value of type T.
type InterruptTicketMutex[T any] struct {
	Mutex[RawInterruptTicketMutex, *RawInterruptTicketMutex, T]
}

// NewInterruptTicketMutex wraps data in an InterruptTicketMutex, initially
// unlocked.
func NewInterruptTicketMutex[T any](data T) *InterruptTicketMutex[T] {
	return &InterruptTicketMutex[T]{Mutex: Mutex[RawInterruptTicketMutex, *RawInterruptTicketMutex, T]{data: data}}
}

// RWSpinLock pairs a RawRWSpinLock with a protected value of type T.
type RWSpinLock[T any] struct {
	RWLock[RawRWSpinLock, *RawRWSpinLock, T]
}

// NewRWSpinLock wraps data in an RWSpinLock, initially unlocked.
func NewRWSpinLock[T any](data T) *RWSpinLock[T] {
	return &RWSpinLock[T]{RWLock: RWLock[RawRWSpinLock, *RawRWSpinLock, T]{data: data}}
}

// InterruptRWSpinLock pairs an interrupt-masking RawRWSpinLock with a
// protected value of type T. Supplemental: the reference algorithm only
// composes its interrupt wrapper with mutexes, but RawInterruptRWLock
// makes the identical composition available for readers/writer locks.
type InterruptRWSpinLock[T any] struct {
	RWLock[RawInterruptRWSpinLock, *RawInterruptRWSpinLock, T]
}

// NewInterruptRWSpinLock wraps data in an InterruptRWSpinLock, initially
// unlocked.
func NewInterruptRWSpinLock[T any](data T) *InterruptRWSpinLock[T] {
	return &InterruptRWSpinLock[T]{RWLock: RWLock[RawInterruptRWSpinLock, *RawInterruptRWSpinLock, T]{data: data}}
}
