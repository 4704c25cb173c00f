// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"sync"

	"github.com/ik5/wavesel/audio"
)

// Cache memoises Downsample for one (buffer version, width) pair. It is
// safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	width   int
	cols    []Column

	computed int
}

// Columns returns the columns of buf at width, computing them only when
// the buffer version or width differs from the cached entry or after
// Invalidate. The returned slice is shared and must not be modified.
func (c *Cache) Columns(buf *audio.Buffer, width int) []Column {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid && c.version == buf.Version() && c.width == width {
		return c.cols
	}

	c.cols = Downsample(buf, width)
	c.version = buf.Version()
	c.width = width
	c.valid = true
	c.computed++

	return c.cols
}

// Invalidate drops the cached entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.cols = nil
	c.mu.Unlock()
}
