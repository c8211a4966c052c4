package ksync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOneShotMutexLocksOnce(t *testing.T) {
	m := NewOneShotMutex()
	assert.False(t, m.IsLocked())

	assert.True(t, m.TryLock())
	assert.True(t, m.IsLocked())
	m.Unlock()
	assert.False(t, m.IsLocked())
}

func TestOneShotMutexTryLockFailsAfterFirstCycle(t *testing.T) {
	m := NewOneShotMutex()
	assert.True(t, m.TryLock())
	m.Unlock()

	assert.False(t, m.TryLock(), "TryLock must never succeed a second time")
	assert.False(t, m.TryLock(), "repeated failed attempts must stay false")
}

func TestOneShotMutexTryLockFailsWhileLocked(t *testing.T) {
	m := NewOneShotMutex()
	m.Lock()

	acquired := make(chan struct{})
	go func() {
		// TryLock on an already-held (not yet spent) mutex must fail, not
		// block, and must not mark it spent.
		if m.TryLock() {
			t.Error("TryLock unexpectedly succeeded while mutex was held")
		}
		close(acquired)
	}()
	<-acquired

	m.Unlock()
	assert.False(t, m.TryLock(), "mutex is spent after its first Lock/Unlock cycle")
}
