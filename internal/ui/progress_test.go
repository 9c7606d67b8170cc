package ui

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressHandle(t *testing.T) {
	pm := NewProgressManager(io.Discard)
	h := pm.Register("Demo", 3)

	h.Update(1, 3, 512)
	h.Update(2, 4, 1024)
	assert.Equal(t, int64(4), h.total.Load())
	assert.Equal(t, int64(1024), h.bytes.Load())

	h.MarkDone()
	h.MarkDone()
	h.Update(0, 9, 0)
	assert.True(t, h.final.Load())
	assert.Equal(t, int64(4), h.total.Load())

	pm.Close()
}
