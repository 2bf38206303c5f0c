package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompletionGiveIsBinary(t *testing.T) {
	c := NewCompletion()
	assert.False(t, c.Given())
	assert.False(t, c.TryTake())

	assert.True(t, c.GiveFromISR())
	assert.False(t, c.GiveFromISR(), "second give must not stack")
	assert.True(t, c.Given())

	assert.True(t, c.TryTake())
	assert.False(t, c.TryTake())
}

func TestCompletionTakeBlocksUntilGiven(t *testing.T) {
	c := NewCompletion()
	taken := make(chan struct{})
	go func() {
		c.Take()
		close(taken)
	}()

	select {
	case <-taken:
		t.Fatal("Take returned before the semaphore was given")
	case <-time.After(20 * time.Millisecond):
	}

	c.GiveFromISR()
	select {
	case <-taken:
	case <-time.After(5 * time.Second):
		t.Fatal("Take did not return after give")
	}
}
