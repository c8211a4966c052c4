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

// Flags is an opaque per-architecture value representing whether
// interrupts were enabled or disabled at the point ReadAndDisable was
// called.
type Flags uint8

// DisabledSentinel is the distinguished Flags value meaning "interrupts
// were already disabled"; Restore is a no-op when given this value.
const DisabledSentinel Flags = 0

// ReadAndDisable disables interrupts on the current execution context and
// returns the state they were in beforehand. If interrupts were already
// disabled, it returns DisabledSentinel without re-issuing the disable
// instruction (there's nothing to do, and nothing to undo later).
//
// The actual hardware read/disable instructions are architecture-specific
// and out of scope for this package (see interrupt_hosted.go and
// interrupt_baremetal.go) — this function only orchestrates the
// read-then-maybe-disable contract spec.md requires.
func ReadAndDisable() Flags {
	return hwReadAndDisable()
}

// Restore re-enables interrupts if flags indicates they were enabled
// before the matching ReadAndDisable call; otherwise it is a no-op. This
// makes nesting safe: an inner WithoutInterrupts call observes "already
// disabled" (DisabledSentinel) and its Restore is a no-op, leaving the
// outer disable/enable pairing intact.
func Restore(flags Flags) {
	if flags != DisabledSentinel {
		hwRestore(flags)
	}
}

// WithoutInterrupts runs f with interrupts disabled, restoring the prior
// state on every exit path — including a panic unwinding out of f, which
// is this package's equivalent of spec.md's "abnormal termination of the
// closure."
//
// Do not call ReadAndDisable/Restore independently from within f; doing so
// defeats the nesting guarantee documented above.
func WithoutInterrupts(f func()) {
	flags := ReadAndDisable()
	defer Restore(flags)
	f()
}
