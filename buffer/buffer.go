// Package buffer owns CPU-side vertex/index data and lazily materialises the
// matching GPU buffer. It is the leaf component every other package in this
// module eventually bottoms out on: geometry points, normals, colours,
// texture coordinates, and indices are all typed arrays.
package buffer

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/perryiv/wgsg-go/common"
)

// Usage identifies how a typed array's GPU buffer will be bound.
type Usage int

const (
	// UsageVertex marks the array for binding as vertex data.
	UsageVertex Usage = iota
	// UsageIndex marks the array for binding as index data.
	UsageIndex
)

// Float32Array owns a contiguous []float32 buffer (positions, normals,
// colours, texture coordinates) and a lazily materialised, idempotent GPU
// buffer. Reassigning Data invalidates the cached GPU buffer. Data is not
// copied at construction — the same backing slice may be shared across
// geometries.
type Float32Array struct {
	data   []float32
	usage  Usage
	gpuBuf *wgpu.Buffer
}

// NewFloat32Array wraps data (not copied) for the given usage.
func NewFloat32Array(data []float32, usage Usage) *Float32Array {
	return &Float32Array{data: data, usage: usage}
}

// Data returns the underlying scalar slice.
func (a *Float32Array) Data() []float32 {
	return a.data
}

// Len reports the element count (number of scalars, not vertices).
func (a *Float32Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.data)
}

// SetData replaces the backing slice and invalidates the cached GPU buffer.
func (a *Float32Array) SetData(data []float32) {
	a.data = data
	a.invalidate()
}

// invalidate drops the cached GPU buffer so the next materialisation rebuilds it.
func (a *Float32Array) invalidate() {
	if a.gpuBuf != nil {
		a.gpuBuf.Release()
		a.gpuBuf = nil
	}
}

// GPUBuffer returns the cached GPU buffer, or nil if not yet materialised.
func (a *Float32Array) GPUBuffer() *wgpu.Buffer {
	if a == nil {
		return nil
	}
	return a.gpuBuf
}

// Materialize lazily creates (or returns the existing) GPU buffer for this
// array's current data. Idempotent: repeated calls with unchanged data are
// no-ops after the first.
func (a *Float32Array) Materialize(device *wgpu.Device, queue *wgpu.Queue) (*wgpu.Buffer, error) {
	if a.gpuBuf != nil {
		return a.gpuBuf, nil
	}
	if len(a.data) == 0 {
		return nil, nil
	}

	usage := wgpu.BufferUsageVertex
	if a.usage == UsageIndex {
		usage = wgpu.BufferUsageIndex
	}

	bytes := common.SliceToBytes(a.data)
	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(len(bytes)),
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	queue.WriteBuffer(buf, 0, bytes)
	a.gpuBuf = buf
	return buf, nil
}

// IndexWidth identifies whether an index array is 16- or 32-bit, matching
// the index-type variants a primitive set may declare.
type IndexWidth int

const (
	// IndexWidth16 is a 16-bit unsigned index array.
	IndexWidth16 IndexWidth = iota
	// IndexWidth32 is a 32-bit unsigned index array.
	IndexWidth32
)

// IndexArray owns a contiguous index buffer in either 16- or 32-bit width
// and lazily materialises the matching GPU index buffer.
type IndexArray struct {
	data16 []uint16
	data32 []uint32
	width  IndexWidth
	gpuBuf *wgpu.Buffer
}

// NewIndexArray16 wraps a 16-bit index slice (not copied).
func NewIndexArray16(data []uint16) *IndexArray {
	return &IndexArray{data16: data, width: IndexWidth16}
}

// NewIndexArray32 wraps a 32-bit index slice (not copied).
func NewIndexArray32(data []uint32) *IndexArray {
	return &IndexArray{data32: data, width: IndexWidth32}
}

// Width reports whether this is a 16- or 32-bit index array.
func (a *IndexArray) Width() IndexWidth {
	return a.width
}

// Len reports the number of indices.
func (a *IndexArray) Len() int {
	if a == nil {
		return 0
	}
	if a.width == IndexWidth16 {
		return len(a.data16)
	}
	return len(a.data32)
}

// SetData16 replaces the backing 16-bit slice and invalidates the GPU buffer.
func (a *IndexArray) SetData16(data []uint16) {
	a.data16 = data
	a.data32 = nil
	a.width = IndexWidth16
	a.invalidate()
}

// SetData32 replaces the backing 32-bit slice and invalidates the GPU buffer.
func (a *IndexArray) SetData32(data []uint32) {
	a.data32 = data
	a.data16 = nil
	a.width = IndexWidth32
	a.invalidate()
}

func (a *IndexArray) invalidate() {
	if a.gpuBuf != nil {
		a.gpuBuf.Release()
		a.gpuBuf = nil
	}
}

// GPUBuffer returns the cached GPU index buffer, or nil if not yet materialised.
func (a *IndexArray) GPUBuffer() *wgpu.Buffer {
	if a == nil {
		return nil
	}
	return a.gpuBuf
}

// IndexFormat returns the wgpu index format matching this array's width.
func (a *IndexArray) IndexFormat() wgpu.IndexFormat {
	if a.width == IndexWidth16 {
		return wgpu.IndexFormatUint16
	}
	return wgpu.IndexFormatUint32
}

// Materialize lazily creates (or returns the existing) GPU index buffer.
func (a *IndexArray) Materialize(device *wgpu.Device, queue *wgpu.Queue) (*wgpu.Buffer, error) {
	if a.gpuBuf != nil {
		return a.gpuBuf, nil
	}

	var bytes []byte
	if a.width == IndexWidth16 {
		if len(a.data16) == 0 {
			return nil, nil
		}
		bytes = common.SliceToBytes(a.data16)
	} else {
		if len(a.data32) == 0 {
			return nil, nil
		}
		bytes = common.SliceToBytes(a.data32)
	}

	buf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Size:             uint64(len(bytes)),
		Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return nil, err
	}
	queue.WriteBuffer(buf, 0, bytes)
	a.gpuBuf = buf
	return buf, nil
}
