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

import "runtime"

// stepMax caps the number of times a Backoff will double its spin count.
// Past this point further doubling buys nothing but latency, so Backoff
// reports itself as saturated instead.
const stepMax = 11

// Backoff produces an increasing busy-wait delay between polls of a
// contended lock word. Doubling the spin count between attempts reduces
// the cache-line invalidation storm that many cores hammering the same CAS
// would otherwise cause; the cap keeps any one waiter from going quiet for
// an unbounded time.
//
// A Backoff is meant to be stack-allocated fresh for each waiting episode:
//
//	var b Backoff
//	for !tryAcquire() {
//		b.Snooze()
//	}
type Backoff struct {
	step uint8
}

// NewBackoff returns a fresh pacer with its step counter at zero.
func NewBackoff() *Backoff {
	return &Backoff{}
}

// Snooze busy-spins for 2^step iterations and then advances step, unless
// the pacer has already saturated. Go has no spin-loop-hint intrinsic in
// the standard library, so the delay is a plain empty loop for the
// non-saturated case; once saturated, Snooze additionally yields to the
// scheduler via runtime.Gosched so a long-spinning goroutine doesn't
// starve whichever goroutine it is actually waiting on.
func (b *Backoff) Snooze() {
	for i := 0; i < 1<<b.step; i++ {
		// spin-loop hint substitute: burn a cycle, touch no memory.
	}

	if !b.IsCompleted() {
		b.step++
	} else {
		runtime.Gosched()
	}
}

// IsCompleted reports whether the pacer has reached its saturation point.
// It is monotone: once true, it never reports false again for the
// lifetime of this Backoff.
func (b *Backoff) IsCompleted() bool {
	return b.step > stepMax
}
