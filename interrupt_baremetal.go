//go:build ksync_baremetal

package ksync

// This file is the extension point for a genuine freestanding build (for
// example a TinyGo kernel target). spec.md §1 places "the
// architecture-specific instructions for reading/writing CPU
// interrupt-enable state" explicitly out of scope for this module: it is
// specified by contract, not by encoding. A real bare-metal build would
// replace this file with one that reads/writes the relevant flag register
// (x86_64 RFLAGS.IF via cli/sti, AArch64 DAIF via msr, RISC-V sstatus.SIE
// via csrc/csrs — see original_source/src/interrupts.rs for the reference
// per-architecture encodings this was distilled from) instead of panicking.

func hwReadAndDisable() Flags {
	panic("ksync: ksync_baremetal build requires an arch-specific hwReadAndDisable")
}

func hwRestore(Flags) {
	panic("ksync: ksync_baremetal build requires an arch-specific hwRestore")
}
