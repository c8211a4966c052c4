package ksync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRWSpinLockReadWrite(t *testing.T) {
	l := NewRWSpinLock([]int{1, 2, 3})

	rg := l.Read()
	assert.Equal(t, []int{1, 2, 3}, *rg.Value())
	rg.Unlock()

	wg := l.Write()
	*wg.Value() = append(*wg.Value(), 4)
	assert.Equal(t, []int{1, 2, 3, 4}, *wg.Value())
	wg.Unlock()
}

func TestRWSpinLockTryWriteBlockedByReader(t *testing.T) {
	l := NewRWSpinLock(0)
	rg, ok := l.TryRead()
	assert.True(t, ok)

	_, ok = l.TryWrite()
	assert.False(t, ok, "a held read guard must block TryWrite")

	rg.Unlock()
	wg, ok := l.TryWrite()
	assert.True(t, ok)
	wg.Unlock()
}

func TestRWSpinLockUpgradableUpgradeDowngrade(t *testing.T) {
	l := NewRWSpinLock(100)

	ug := l.UpgradableRead()
	assert.Equal(t, 100, *ug.Value())

	wg := ug.Upgrade()
	*wg.Value() = 200

	rg := wg.Downgrade()
	assert.Equal(t, 200, *rg.Value())
	rg.Unlock()

	assert.False(t, l.IsLocked())
}

func TestRWSpinLockWriteDowngradeToUpgradable(t *testing.T) {
	l := NewRWSpinLock(5)

	wg := l.Write()
	ug := wg.DowngradeToUpgradable()
	assert.Equal(t, 5, *ug.Value())

	// A plain reader must be able to join an upgradable holder.
	rg, ok := l.TryRead()
	assert.True(t, ok)
	rg.Unlock()

	ug.Unlock()
	assert.False(t, l.IsLocked())
}

func TestInterruptRWSpinLockGuardsValue(t *testing.T) {
	l := NewInterruptRWSpinLock(map[string]int{"a": 1})

	wg := l.Write()
	(*wg.Value())["b"] = 2
	wg.Unlock()

	rg := l.Read()
	assert.Equal(t, 2, (*rg.Value())["b"])
	rg.Unlock()
}
