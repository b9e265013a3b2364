package browser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogAppendAndText(t *testing.T) {
	log := NewConsoleLog(10)
	log.Append("log", "hello")
	log.Append("error", "boom")

	text := log.Text()
	assert.Contains(t, text, "[log] hello")
	assert.Contains(t, text, "[error] boom")
	assert.Equal(t, 2, log.Len())
}

func TestConsoleLogDropsOldestWhenFull(t *testing.T) {
	log := NewConsoleLog(3)
	for i := 0; i < 5; i++ {
		log.Append("log", fmt.Sprintf("msg-%d", i))
	}

	text := log.Text()
	assert.Equal(t, 3, log.Len())
	assert.NotContains(t, text, "msg-0")
	assert.NotContains(t, text, "msg-1")
	assert.Contains(t, text, "msg-4")
	assert.True(t, strings.HasPrefix(text, "[2 earlier messages dropped]"))
}

func TestConsoleLogClear(t *testing.T) {
	log := NewConsoleLog(3)
	log.Append("log", "one")
	log.Clear()

	assert.Equal(t, 0, log.Len())
	assert.Equal(t, "", log.Text())
}

func TestConsoleLogZeroLimitUsesDefault(t *testing.T) {
	log := NewConsoleLog(0)
	log.Append("log", "one")
	assert.Equal(t, 1, log.Len())
}
