// Package loadertest builds small glTF assets in memory for tests.
package loadertest

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"math"
)

// BoxOptions describes the box asset produced by BoxGLB.
type BoxOptions struct {
	// OpenDuration is the length of box_open in seconds.
	OpenDuration float32

	// CloseDuration is the length of box_close in seconds.
	CloseDuration float32

	// DropDuration is the length of empty_falling in seconds.
	DropDuration float32

	// OmitDrop leaves empty_falling out of the asset.
	OmitDrop bool

	// OmitClose leaves box_close out of the asset.
	OmitClose bool
}

// DefaultBoxOptions returns one-second clips with all three animations present.
func DefaultBoxOptions() BoxOptions {
	return BoxOptions{OpenDuration: 1, CloseDuration: 1, DropDuration: 1}
}

// builder accumulates a binary buffer plus the bufferViews and accessors that
// describe it.
type builder struct {
	bin         bytes.Buffer
	bufferViews []map[string]any
	accessors   []map[string]any
}

func (b *builder) align() {
	for b.bin.Len()%4 != 0 {
		b.bin.WriteByte(0)
	}
}

func (b *builder) floats(typ string, values ...float32) int {
	b.align()
	off := b.bin.Len()
	for _, v := range values {
		_ = binary.Write(&b.bin, binary.LittleEndian, math.Float32bits(v))
	}
	n := map[string]int{"SCALAR": 1, "VEC3": 3, "VEC4": 4}[typ]
	return b.accessor(off, b.bin.Len()-off, 5126, len(values)/n, typ)
}

func (b *builder) indices(values ...uint16) int {
	b.align()
	off := b.bin.Len()
	for _, v := range values {
		_ = binary.Write(&b.bin, binary.LittleEndian, v)
	}
	return b.accessor(off, b.bin.Len()-off, 5123, len(values), "SCALAR")
}

func (b *builder) accessor(offset, length, componentType, count int, typ string) int {
	b.bufferViews = append(b.bufferViews, map[string]any{
		"buffer": 0, "byteOffset": offset, "byteLength": length,
	})
	b.accessors = append(b.accessors, map[string]any{
		"bufferView": len(b.bufferViews) - 1, "componentType": componentType, "count": count, "type": typ,
	})
	return len(b.accessors) - 1
}

func (b *builder) clip(name string, node int, path string, duration float32, from, to []float32) map[string]any {
	input := b.floats("SCALAR", 0, duration)
	typ := "VEC3"
	if len(from) == 4 {
		typ = "VEC4"
	}
	output := b.floats(typ, append(append([]float32{}, from...), to...)...)
	return map[string]any{
		"name":     name,
		"samplers": []map[string]any{{"input": input, "output": output}},
		"channels": []map[string]any{{"sampler": 0, "target": map[string]any{"node": node, "path": path}}},
	}
}

// BoxGLB returns a GLB asset containing a "Box" node with a "Lid" child mesh and
// an "Empty" node, plus the box_open, box_close and empty_falling animations in
// that document order (close and drop are optional).
//
// box_open rotates Lid from identity to 90 degrees about X, box_close reverses it,
// and empty_falling moves Empty from (0,2,0) down to the origin.
func BoxGLB(opts BoxOptions) []byte {
	b := &builder{}

	pos := b.floats("VEC3", 0, 0, 0, 1, 0, 0, 0, 1, 0)
	idx := b.indices(0, 1, 2)

	s := float32(math.Sqrt(0.5))
	identity := []float32{0, 0, 0, 1}
	open := []float32{s, 0, 0, s}

	anims := []map[string]any{b.clip("box_open", 1, "rotation", opts.OpenDuration, identity, open)}
	if !opts.OmitClose {
		anims = append(anims, b.clip("box_close", 1, "rotation", opts.CloseDuration, open, identity))
	}
	if !opts.OmitDrop {
		anims = append(anims, b.clip("empty_falling", 2, "translation", opts.DropDuration, []float32{0, 2, 0}, []float32{0, 0, 0}))
	}
	b.align()

	doc := map[string]any{
		"asset":  map[string]any{"version": "2.0"},
		"scene":  0,
		"scenes": []map[string]any{{"name": "box_open_close", "nodes": []int{0, 2}}},
		"nodes": []map[string]any{
			{"name": "Box", "children": []int{1}},
			{"name": "Lid", "mesh": 0, "translation": []float32{0, 1, 0}},
			{"name": "Empty"},
		},
		"meshes": []map[string]any{{
			"name":       "lid",
			"primitives": []map[string]any{{"attributes": map[string]int{"POSITION": pos}, "indices": idx}},
		}},
		"accessors":   b.accessors,
		"bufferViews": b.bufferViews,
		"buffers":     []map[string]any{{"byteLength": b.bin.Len()}},
		"animations":  anims,
	}

	js, _ := json.Marshal(doc)
	for len(js)%4 != 0 {
		js = append(js, ' ')
	}

	var out bytes.Buffer
	total := 12 + 8 + len(js) + 8 + b.bin.Len()
	_ = binary.Write(&out, binary.LittleEndian, [3]uint32{0x46546C67, 2, uint32(total)})
	_ = binary.Write(&out, binary.LittleEndian, [2]uint32{uint32(len(js)), 0x4E4F534A})
	out.Write(js)
	_ = binary.Write(&out, binary.LittleEndian, [2]uint32{uint32(b.bin.Len()), 0x004E4942})
	out.Write(b.bin.Bytes())
	return out.Bytes()
}
