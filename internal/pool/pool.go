// Package pool provides sync.Pool-backed buffers reused across frames.
package pool

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

// layerSliceCap fits a desktop with a handful of windows and every overlay.
const layerSliceCap = 16

var stringBuilderPool = sync.Pool{
	New: func() any { return &strings.Builder{} },
}

var layerSlicePool = sync.Pool{
	New: func() any {
		s := make([]*lipgloss.Layer, 0, layerSliceCap)
		return &s
	},
}

// GetStringBuilder returns an empty builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets sb and returns it to the pool.
func PutStringBuilder(sb *strings.Builder) {
	sb.Reset()
	stringBuilderPool.Put(sb)
}

// GetLayerSlice returns an empty layer slice from the pool.
func GetLayerSlice() *[]*lipgloss.Layer {
	return layerSlicePool.Get().(*[]*lipgloss.Layer)
}

// PutLayerSlice clears the slice and returns it to the pool.
func PutLayerSlice(s *[]*lipgloss.Layer) {
	clear(*s)
	*s = (*s)[:0]
	layerSlicePool.Put(s)
}
