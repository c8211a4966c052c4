package ksync

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRawRWSpinLockZeroValueUnlocked(t *testing.T) {
	var l RawRWSpinLock
	assert.False(t, l.IsLocked())
	assert.False(t, l.IsLockedExclusive())
}

func TestRawRWSpinLockSharedReadersCoexist(t *testing.T) {
	var l RawRWSpinLock
	assert.True(t, l.TryLockShared())
	assert.True(t, l.TryLockShared())
	assert.True(t, l.TryLockShared())
	assert.True(t, l.IsLocked())
	assert.False(t, l.IsLockedExclusive())

	l.UnlockShared()
	l.UnlockShared()
	assert.True(t, l.IsLocked())
	l.UnlockShared()
	assert.False(t, l.IsLocked())
}

// TestRawRWSpinLockTryWriteBlockedByReader exercises S3: a held shared
// read must block an exclusive TryLockExclusive.
func TestRawRWSpinLockTryWriteBlockedByReader(t *testing.T) {
	var l RawRWSpinLock
	assert.True(t, l.TryLockShared())
	assert.False(t, l.TryLockExclusive(), "TryLockExclusive must fail while a reader holds the lock")
	l.UnlockShared()
	assert.True(t, l.TryLockExclusive())
	l.UnlockExclusive()
}

func TestRawRWSpinLockUpgradableCoexistsWithShared(t *testing.T) {
	var l RawRWSpinLock
	assert.True(t, l.TryLockUpgradable())
	assert.True(t, l.TryLockShared(), "a shared reader must be able to join an upgradable holder")
	assert.False(t, l.TryLockUpgradable(), "only one upgradable holder may be registered at a time")
	assert.False(t, l.TryLockExclusive(), "an exclusive holder cannot coexist with an upgradable or shared holder")

	l.UnlockShared()
	l.UnlockUpgradable()
	assert.False(t, l.IsLocked())
}

// TestRawRWSpinLockUpgradePath exercises S4: an upgradable holder with no
// other readers present can Upgrade into the exclusive state, after which
// no new reader can join until the exclusive hold is released.
func TestRawRWSpinLockUpgradePath(t *testing.T) {
	var l RawRWSpinLock
	assert.True(t, l.TryLockUpgradable())
	l.Upgrade()
	assert.True(t, l.IsLockedExclusive())
	assert.False(t, l.TryLockShared(), "no reader may join once upgraded to exclusive")
	l.UnlockExclusive()
	assert.False(t, l.IsLocked())
}

func TestRawRWSpinLockTryUpgradeFailsWithReadersPresent(t *testing.T) {
	var l RawRWSpinLock
	assert.True(t, l.TryLockUpgradable())
	assert.True(t, l.TryLockShared())
	assert.False(t, l.TryUpgrade(), "TryUpgrade must fail while a plain reader is still present")

	l.UnlockShared()
	assert.True(t, l.TryUpgrade())
	l.UnlockExclusive()
}

// TestRawRWSpinLockDowngradePath exercises S5: an exclusive holder can
// downgrade directly to shared, and the lock is never observed fully
// unheld during the transition.
func TestRawRWSpinLockDowngradePath(t *testing.T) {
	var l RawRWSpinLock
	l.LockExclusive()
	l.Downgrade()
	assert.False(t, l.IsLockedExclusive())
	assert.True(t, l.IsLocked())
	assert.True(t, l.TryLockShared(), "other readers must be able to join after downgrade")
	l.UnlockShared()
	l.UnlockShared()
	assert.False(t, l.IsLocked())
}

func TestRawRWSpinLockDowngradeToUpgradable(t *testing.T) {
	var l RawRWSpinLock
	l.LockExclusive()
	l.DowngradeToUpgradable()
	assert.False(t, l.IsLockedExclusive())
	assert.True(t, isLockedUpgradable(l.word.Load()))
	l.UnlockUpgradable()
	assert.False(t, l.IsLocked())
}

// TestRawRWSpinLockSharedOverflowPanics exercises S7: pushing
// SHARED_COUNT to the edge of sharedOverflowThreshold and one past it
// must panic, with the word restored to its pre-call value rather than
// left corrupted.
func TestRawRWSpinLockSharedOverflowPanics(t *testing.T) {
	var l RawRWSpinLock
	l.word.Store(sharedOverflowThreshold + shared)

	before := l.word.Load()
	assert.Panics(t, func() {
		l.TryLockShared()
	})
	assert.Equal(t, before, l.word.Load(), "word must be restored to its pre-call value after a rolled-back overflow")
}

// TestRawRWSpinLockConcurrentReadersWriters exercises the lock under
// contention: concurrent writers increment a counter while holding
// exclusive and concurrent readers read it under a shared hold; the run
// must finish within the timeout and the final count must equal every
// writer increment, matching S1/S3's spirit for the RW lock.
func TestRawRWSpinLockConcurrentReadersWriters(t *testing.T) {
	const writers = 8
	const readers = 16
	const iterations = 500

	var l RawRWSpinLock
	var counter int
	seen := make(map[int]bool)
	var seenMu sync.Mutex

	var wg sync.WaitGroup
	wg.Add(writers + readers)

	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				l.LockExclusive()
				counter++
				l.UnlockExclusive()
			}
		}()
	}

	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				l.LockShared()
				v := counter
				l.UnlockShared()
				seenMu.Lock()
				seen[v] = true
				seenMu.Unlock()
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("reader/writer contention test did not complete in time")
	}

	assert.Equal(t, writers*iterations, counter)
}
