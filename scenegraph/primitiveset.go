package scenegraph

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/buffer"
)

// PrimitiveSet describes one draw call's worth of a Geometry's vertex data:
// a topology plus either a contiguous vertex range (Array) or an index
// buffer (Indexed). Exactly one of Indices/FirstVertex+NumVertices is
// meaningful, selected by Indexed.
type PrimitiveSet struct {
	Topology wgpu.PrimitiveTopology
	Indexed  bool

	// Array variant.
	FirstVertex uint32
	NumVertices uint32

	// Indexed variant.
	Indices *buffer.IndexArray
}

// NewArrayPrimitiveSet describes a contiguous, unindexed draw.
func NewArrayPrimitiveSet(topology wgpu.PrimitiveTopology, firstVertex, numVertices uint32) PrimitiveSet {
	return PrimitiveSet{Topology: topology, FirstVertex: firstVertex, NumVertices: numVertices}
}

// NewIndexedPrimitiveSet describes an indexed draw.
func NewIndexedPrimitiveSet(topology wgpu.PrimitiveTopology, indices *buffer.IndexArray) PrimitiveSet {
	return PrimitiveSet{Topology: topology, Indexed: true, Indices: indices}
}

// NumIndices reports the index count for an Indexed set, 0 otherwise.
func (p PrimitiveSet) NumIndices() int {
	if !p.Indexed || p.Indices == nil {
		return 0
	}
	return p.Indices.Len()
}
