//go:build !ksync_baremetal

package ksync

// On every hosted target (the default build of this module — i.e.
// anything other than a genuine freestanding kernel build), there is no
// legal way for user code to mask hardware interrupts, and no need to:
// the host OS scheduler owns that. Both hooks are no-ops, and
// ReadAndDisable always reports "already disabled," matching spec.md's
// "on hosted (non-freestanding) targets, all operations are no-ops and
// always return DISABLED_SENTINEL." This is what keeps every test in this
// module runnable against a normal OS.

func hwReadAndDisable() Flags {
	return DisabledSentinel
}

func hwRestore(Flags) {}
