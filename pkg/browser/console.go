package browser

import (
	"fmt"
	"strings"
	"sync"
)

// ConsoleLog is a bounded, concurrency-safe log of console messages from
// the automated page. When full it drops the oldest entries so a chatty
// page cannot grow memory without bound.
type ConsoleLog struct {
	mu      sync.Mutex
	limit   int
	entries []string
	dropped int
}

// NewConsoleLog creates a log retaining at most limit entries.
func NewConsoleLog(limit int) *ConsoleLog {
	if limit <= 0 {
		limit = DefaultConsoleLimit
	}
	return &ConsoleLog{limit: limit}
}

// Append records one console message with its type ("log", "error", ...).
func (c *ConsoleLog) Append(kind, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, fmt.Sprintf("[%s] %s", kind, text))
	if len(c.entries) > c.limit {
		overflow := len(c.entries) - c.limit
		c.entries = c.entries[overflow:]
		c.dropped += overflow
	}
}

// Len returns the number of retained entries.
func (c *ConsoleLog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Text renders the retained log as one newline-separated payload, noting
// how many older entries were dropped.
func (c *ConsoleLog) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var b strings.Builder
	if c.dropped > 0 {
		fmt.Fprintf(&b, "[%d earlier messages dropped]\n", c.dropped)
	}
	for _, entry := range c.entries {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	return b.String()
}

// Clear discards all retained entries.
func (c *ConsoleLog) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.dropped = 0
}
