package ksync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRawInterruptSpinMutexLockDelegatesToInner exercises S6 as far as a
// hosted build can: acquiring an interrupt-masking mutex must leave the
// lock held exactly like its unwrapped inner type, and IsLocked must
// delegate through. Interrupt masking itself is a no-op on hosted builds
// and is not observed here.
func TestRawInterruptSpinMutexLockDelegatesToInner(t *testing.T) {
	var m RawInterruptSpinMutex
	assert.False(t, m.IsLocked())

	m.Lock()
	assert.True(t, m.IsLocked())
	m.Unlock()
	assert.False(t, m.IsLocked())
}

func TestRawInterruptTicketMutexTryLock(t *testing.T) {
	var m RawInterruptTicketMutex
	assert.True(t, m.TryLock())
	assert.False(t, m.TryLock(), "TryLock must fail while already held")
	m.Unlock()
	assert.True(t, m.TryLock())
	m.Unlock()
}

// TestRawInterruptMutexComposesWithOneShot demonstrates C6 composing with
// the one-shot collaborator, not just the spin/ticket raw mutexes.
func TestRawInterruptMutexComposesWithOneShot(t *testing.T) {
	var m RawInterruptMutex[OneShotMutex, *OneShotMutex]
	m.inner = *NewOneShotMutex()

	assert.True(t, m.TryLock())
	m.Unlock()
	assert.False(t, m.TryLock(), "one-shot mutex must never succeed a second time")
}

func TestRawInterruptRWSpinLockSharedAndExclusive(t *testing.T) {
	var l RawInterruptRWSpinLock

	assert.True(t, l.TryLockShared())
	assert.True(t, l.TryLockShared())
	assert.False(t, l.TryLockExclusive())
	l.UnlockShared()
	l.UnlockShared()
	assert.False(t, l.IsLocked())

	assert.True(t, l.TryLockExclusive())
	assert.True(t, l.IsLockedExclusive())
	l.UnlockExclusive()
	assert.False(t, l.IsLocked())
}

func TestRawInterruptRWSpinLockUpgradeDowngrade(t *testing.T) {
	var l RawInterruptRWSpinLock

	l.LockUpgradable()
	l.Upgrade()
	assert.True(t, l.IsLockedExclusive())

	l.Downgrade()
	assert.False(t, l.IsLockedExclusive())
	assert.True(t, l.IsLocked())
	l.UnlockShared()
	assert.False(t, l.IsLocked())
}
