package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat32ArrayLenReportsScalarCount(t *testing.T) {
	a := NewFloat32Array([]float32{1, 2, 3, 4, 5, 6}, UsageVertex)
	assert.Equal(t, 6, a.Len())
}

func TestFloat32ArraySetDataInvalidatesGPUBuffer(t *testing.T) {
	a := NewFloat32Array([]float32{1, 2, 3}, UsageVertex)
	assert.Nil(t, a.GPUBuffer())

	// No buffer can be materialised without a device, so this checks only
	// that SetData replaces the data and leaves no GPU buffer cached.
	a.gpuBuf = nil
	a.SetData([]float32{4, 5, 6})
	assert.Equal(t, []float32{4, 5, 6}, a.Data())
	assert.Nil(t, a.GPUBuffer())
}

func TestNilFloat32ArrayLenIsZero(t *testing.T) {
	var a *Float32Array
	assert.Equal(t, 0, a.Len())
	assert.Nil(t, a.GPUBuffer())
}

func TestIndexArrayWidthAndLen(t *testing.T) {
	a16 := NewIndexArray16([]uint16{0, 1, 2})
	assert.Equal(t, IndexWidth16, a16.Width())
	assert.Equal(t, 3, a16.Len())

	a32 := NewIndexArray32([]uint32{0, 1, 2, 3})
	assert.Equal(t, IndexWidth32, a32.Width())
	assert.Equal(t, 4, a32.Len())
}

func TestIndexArraySetDataSwitchesWidth(t *testing.T) {
	a := NewIndexArray16([]uint16{0, 1, 2})
	a.SetData32([]uint32{0, 1, 2, 3, 4})
	assert.Equal(t, IndexWidth32, a.Width())
	assert.Equal(t, 5, a.Len())
	assert.Nil(t, a.GPUBuffer())
}
