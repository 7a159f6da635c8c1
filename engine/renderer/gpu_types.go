package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// flatShaderSource is the WGSL program every mesh is drawn with.
//
//go:embed assets/flat.wgsl
var flatShaderSource string

// GPUVertexStride is the byte size of one vertex: a position only.
const GPUVertexStride = 12

// FrameUniform holds the per-frame camera and hemisphere light data.
// Matches the WGSL FrameUniform struct layout exactly (112 bytes).
type FrameUniform struct {
	ViewProjection [16]float32 // offset  0
	SkyColor       [4]float32  // offset 64: rgb, a = intensity
	GroundColor    [4]float32  // offset 80
	LightDirection [4]float32  // offset 96: xyz toward the sky
}

// Marshal serializes the FrameUniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 112-byte buffer
func (f *FrameUniform) Marshal() []byte {
	buf := make([]byte, 0, 112)
	buf = appendFloats(buf, f.ViewProjection[:])
	buf = appendFloats(buf, f.SkyColor[:])
	buf = appendFloats(buf, f.GroundColor[:])
	return appendFloats(buf, f.LightDirection[:])
}

// DrawUniform holds one mesh's world matrix and base color.
// Matches the WGSL DrawUniform struct layout exactly (80 bytes).
type DrawUniform struct {
	Model [16]float32 // offset  0
	Color [4]float32  // offset 64
}

// Marshal serializes the DrawUniform into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 80-byte buffer
func (d *DrawUniform) Marshal() []byte {
	buf := make([]byte, 0, 80)
	buf = appendFloats(buf, d.Model[:])
	return appendFloats(buf, d.Color[:])
}

// marshalPositions packs xyz positions as little-endian float32 vertices.
func marshalPositions(positions []float32) []byte {
	return appendFloats(make([]byte, 0, len(positions)*4), positions)
}

// marshalIndices packs indices as little-endian uint32s.
func marshalIndices(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, v := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

func appendFloats(buf []byte, values []float32) []byte {
	for _, v := range values {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(v))
	}
	return buf
}
