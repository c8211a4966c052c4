package ksync

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadAndDisableHostedIsSentinel(t *testing.T) {
	flags := ReadAndDisable()
	assert.Equal(t, DisabledSentinel, flags, "hosted build has no hardware flags to save")
	Restore(flags)
}

func TestWithoutInterruptsRunsBody(t *testing.T) {
	ran := false
	WithoutInterrupts(func() {
		ran = true
	})
	assert.True(t, ran)
}

func TestWithoutInterruptsRestoresOnPanic(t *testing.T) {
	assert.Panics(t, func() {
		WithoutInterrupts(func() {
			panic("boom")
		})
	})
	// A second call must still work: Restore ran via defer even though the
	// body panicked.
	ran := false
	WithoutInterrupts(func() { ran = true })
	assert.True(t, ran)
}
