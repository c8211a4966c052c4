package ksync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/sync/errgroup"
)

func TestSpinMutexGuardsValue(t *testing.T) {
	m := NewSpinMutex(0)
	assert.False(t, m.IsLocked())

	g := m.Lock()
	*g.Value()++
	assert.Equal(t, 1, *g.Value())
	g.Unlock()
	assert.False(t, m.IsLocked())

	g2, ok := m.TryLock()
	assert.True(t, ok)
	assert.Equal(t, 1, *g2.Value())
	g2.Unlock()
}

func TestSpinMutexTryLockFailsWhileHeld(t *testing.T) {
	m := NewSpinMutex("x")
	g := m.Lock()
	_, ok := m.TryLock()
	assert.False(t, ok)
	g.Unlock()
}

func TestTicketMutexConcurrentIncrements(t *testing.T) {
	const goroutines = 32
	const perGoroutine = 1000

	m := NewTicketMutex(0)

	var g errgroup.Group
	for i := 0; i < goroutines; i++ {
		g.Go(func() error {
			for j := 0; j < perGoroutine; j++ {
				guard := m.Lock()
				*guard.Value()++
				guard.Unlock()
			}
			return nil
		})
	}
	assert.NoError(t, g.Wait())

	guard := m.Lock()
	assert.Equal(t, goroutines*perGoroutine, *guard.Value())
	guard.Unlock()
}

func TestInterruptSpinMutexGuardsValue(t *testing.T) {
	m := NewInterruptSpinMutex(struct{ n int }{n: 7})
	g := m.Lock()
	assert.Equal(t, 7, g.Value().n)
	g.Value().n = 9
	g.Unlock()

	g2 := m.Lock()
	assert.Equal(t, 9, g2.Value().n)
	g2.Unlock()
}
