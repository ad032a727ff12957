// Package logbuffer keeps the most recent formatted log lines in memory.
package logbuffer

import (
	"strings"
	"sync"
)

// DefaultCapacity is the number of lines retained by New when no capacity is given.
const DefaultCapacity = 20

// Buffer is a fixed-capacity FIFO of log lines. Once full, each append evicts the oldest line.
// It implements io.Writer so it can be attached to a zerolog writer chain; every Write is one entry.
type Buffer struct {
	mu    sync.RWMutex
	lines []string
	start int
	size  int
}

func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{lines: make([]string, capacity)}
}

func (b *Buffer) Capacity() int {
	return len(b.lines)
}

func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

func (b *Buffer) Append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := (b.start + b.size) % len(b.lines)
	b.lines[idx] = line
	if b.size < len(b.lines) {
		b.size++
		return
	}
	b.start = (b.start + 1) % len(b.lines)
}

// Write stores p as a single line with its trailing newline removed.
func (b *Buffer) Write(p []byte) (int, error) {
	b.Append(strings.TrimRight(string(p), "\r\n"))
	return len(p), nil
}

// Snapshot returns a copy of all retained lines, oldest first.
func (b *Buffer) Snapshot() []string {
	return b.Last(b.Capacity())
}

// Last returns up to n of the most recent lines, oldest first. n larger than the current size
// yields the whole buffer; n <= 0 yields an empty slice.
func (b *Buffer) Last(n int) []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n <= 0 {
		return []string{}
	}
	if n > b.size {
		n = b.size
	}

	out := make([]string, 0, n)
	first := b.size - n
	for i := first; i < b.size; i++ {
		out = append(out, b.lines[(b.start+i)%len(b.lines)])
	}
	return out
}

func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.lines {
		b.lines[i] = ""
	}
	b.start = 0
	b.size = 0
}
