//go:build !ksync_debug

package ksync

// assert is a no-op in release builds. Caller-contract violations (such as
// unlocking a lock you don't hold) are undefined behavior per spec, not
// recoverable errors, so paying for the check is opt-in via the
// ksync_debug build tag. See assert_debug.go for the checked build.
func assert(cond bool, msg string) {}
