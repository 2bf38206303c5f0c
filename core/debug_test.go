package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func captureDebug(t *testing.T) chan string {
	t.Helper()
	lines := make(chan string, 64)
	SetDebugWriter(func(s string) { lines <- s })
	t.Cleanup(func() {
		SetDebugWriter(nil)
		SetDebugEnabled(false)
	})
	return lines
}

func TestDebugPrintlnGated(t *testing.T) {
	lines := captureDebug(t)

	SetDebugEnabled(false)
	DebugPrintln("hidden")
	assert.Empty(t, lines)

	SetDebugEnabled(true)
	DebugPrintln("shown")
	assert.Equal(t, "shown", <-lines)
}

func TestDebugAsync(t *testing.T) {
	lines := captureDebug(t)
	InitAsyncDebug()

	DebugAsync("queued")
	select {
	case s := <-lines:
		assert.Equal(t, "queued", s)
	case <-time.After(time.Second):
		t.Fatal("async message not written")
	}
}

func TestDumpTimingRing(t *testing.T) {
	lines := captureDebug(t)
	ClearTimingRing()
	RunInterrupt(func() {
		RecordTiming(EvtComplete, 1, 42, 100, 0)
	})

	DumpTimingRing()
	assert.Equal(t, "[TIMING] === Timing Ring Dump ===", <-lines)
	assert.Equal(t, "[TIMING] COMPLETE axis=1 tick=42 v1=100 v2=0", <-lines)
	assert.Equal(t, "[TIMING] === End Dump ===", <-lines)
}
