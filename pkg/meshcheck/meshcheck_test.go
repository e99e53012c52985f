package meshcheck

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/require"

	"github.com/eatspaint/raybase/pkg/tuple"
)

func idx(i int) *int { return &i }

// buildDoc assembles a one-primitive document with its geometry embedded in
// the buffer, the way gltf.Open leaves a .glb in memory.
func buildDoc(positions [][3]float32, indices []uint16) *gltf.Document {
	var data []byte
	for _, p := range positions {
		for _, c := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
		}
	}
	posLen := len(data)
	for _, ix := range indices {
		data = binary.LittleEndian.AppendUint16(data, ix)
	}

	return &gltf.Document{
		Meshes: []*gltf.Mesh{{
			Name: "probe",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Indices:    idx(1),
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
		Accessors: []*gltf.Accessor{
			{BufferView: idx(0), Count: len(positions), Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
			{BufferView: idx(1), Count: len(indices), Type: gltf.AccessorScalar, ComponentType: gltf.ComponentUshort},
		},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
			{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
		},
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
	}
}

func TestCheckDocumentSingleTriangle(t *testing.T) {
	doc := buildDoc(
		[][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[]uint16{0, 1, 2},
	)

	stats, err := CheckDocument(doc)
	require.NoError(t, err)

	require.Equal(t, "probe", stats.Name)
	require.Equal(t, 3, stats.Vertices)
	require.Equal(t, 1, stats.Triangles)
	require.Empty(t, stats.Degenerate)
	require.InDelta(t, 0.5, stats.Area, 1e-9)

	require.True(t, stats.Min.Equals(tuple.Point(0, 0, 0)), "min = %v", stats.Min)
	require.True(t, stats.Max.Equals(tuple.Point(1, 1, 0)), "max = %v", stats.Max)
	require.True(t, stats.Centroid.Equals(tuple.Point(1.0/3, 1.0/3, 0)), "centroid = %v", stats.Centroid)
	require.True(t, stats.Centroid.IsPoint(), "centroid must come back to w = 1")
}

func TestCheckDocumentFlagsDegenerateFaces(t *testing.T) {
	// Face 0 is a unit right triangle, face 1 is three collinear points.
	doc := buildDoc(
		[][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 1}, {2, 2, 2}},
		[]uint16{0, 1, 2, 0, 3, 4},
	)

	stats, err := CheckDocument(doc)
	require.NoError(t, err)

	require.Equal(t, 2, stats.Triangles)
	require.Equal(t, []int{1}, stats.Degenerate)
	require.InDelta(t, 0.5, stats.Area, 1e-9, "degenerate faces must not contribute area")
	require.True(t, stats.Min.Equals(tuple.Point(0, 0, 0)))
	require.True(t, stats.Max.Equals(tuple.Point(2, 2, 2)))
}

func TestCheckDocumentNonIndexed(t *testing.T) {
	doc := buildDoc(
		[][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		nil,
	)
	doc.Meshes[0].Primitives[0].Indices = nil

	stats, err := CheckDocument(doc)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Triangles)
	require.InDelta(t, 0.5, stats.Area, 1e-9)
}

func TestCheckDocumentInterleavedStride(t *testing.T) {
	// Positions padded to a 16-byte stride, as interleaved vertex data
	// lays out. The pad bytes must never reach the decoder.
	var data []byte
	for _, p := range [][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}} {
		for _, c := range p {
			data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
		}
		data = append(data, 0xde, 0xad, 0xbe, 0xef)
	}

	doc := &gltf.Document{
		Meshes: []*gltf.Mesh{{
			Name: "strided",
			Primitives: []*gltf.Primitive{{
				Attributes: map[string]int{gltf.POSITION: 0},
				Mode:       gltf.PrimitiveTriangles,
			}},
		}},
		Accessors: []*gltf.Accessor{
			{BufferView: idx(0), Count: 3, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
		},
		BufferViews: []*gltf.BufferView{
			{Buffer: 0, ByteLength: len(data), ByteStride: 16},
		},
		Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
	}

	stats, err := CheckDocument(doc)
	require.NoError(t, err)
	require.InDelta(t, 2, stats.Area, 1e-9)
	require.True(t, stats.Max.Equals(tuple.Point(2, 2, 0)), "max = %v", stats.Max)
}

func TestCheckDocumentIndexWidths(t *testing.T) {
	tests := []struct {
		name      string
		component gltf.ComponentType
		encode    func([]int) []byte
	}{
		{"ubyte", gltf.ComponentUbyte, func(ix []int) []byte {
			out := make([]byte, len(ix))
			for i, v := range ix {
				out[i] = byte(v)
			}
			return out
		}},
		{"ushort", gltf.ComponentUshort, func(ix []int) []byte {
			var out []byte
			for _, v := range ix {
				out = binary.LittleEndian.AppendUint16(out, uint16(v))
			}
			return out
		}},
		{"uint", gltf.ComponentUint, func(ix []int) []byte {
			var out []byte
			for _, v := range ix {
				out = binary.LittleEndian.AppendUint32(out, uint32(v))
			}
			return out
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var data []byte
			for _, p := range [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}} {
				for _, c := range p {
					data = binary.LittleEndian.AppendUint32(data, math.Float32bits(c))
				}
			}
			posLen := len(data)
			data = append(data, tc.encode([]int{0, 1, 2})...)

			doc := &gltf.Document{
				Meshes: []*gltf.Mesh{{
					Primitives: []*gltf.Primitive{{
						Attributes: map[string]int{gltf.POSITION: 0},
						Indices:    idx(1),
						Mode:       gltf.PrimitiveTriangles,
					}},
				}},
				Accessors: []*gltf.Accessor{
					{BufferView: idx(0), Count: 3, Type: gltf.AccessorVec3, ComponentType: gltf.ComponentFloat},
					{BufferView: idx(1), Count: 3, Type: gltf.AccessorScalar, ComponentType: tc.component},
				},
				BufferViews: []*gltf.BufferView{
					{Buffer: 0, ByteOffset: 0, ByteLength: posLen},
					{Buffer: 0, ByteOffset: posLen, ByteLength: len(data) - posLen},
				},
				Buffers: []*gltf.Buffer{{ByteLength: len(data), Data: data}},
			}

			stats, err := CheckDocument(doc)
			require.NoError(t, err)
			require.Equal(t, 1, stats.Triangles)
			require.InDelta(t, 0.5, stats.Area, 1e-9)
		})
	}
}

func TestCheckDocumentNoGeometry(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		_, err := CheckDocument(&gltf.Document{})
		require.ErrorIs(t, err, ErrNoGeometry)
	})

	t.Run("non-triangle primitive", func(t *testing.T) {
		doc := buildDoc([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint16{0, 1, 2})
		doc.Meshes[0].Primitives[0].Mode = gltf.PrimitiveLines
		_, err := CheckDocument(doc)
		require.ErrorIs(t, err, ErrNoGeometry)
	})

	t.Run("missing positions", func(t *testing.T) {
		doc := buildDoc([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint16{0, 1, 2})
		delete(doc.Meshes[0].Primitives[0].Attributes, gltf.POSITION)
		_, err := CheckDocument(doc)
		require.ErrorIs(t, err, ErrNoGeometry)
	})
}

func TestCheckDocumentExternalBuffer(t *testing.T) {
	doc := buildDoc([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint16{0, 1, 2})
	doc.Buffers[0] = &gltf.Buffer{URI: "mesh.bin", ByteLength: doc.Buffers[0].ByteLength}

	_, err := CheckDocument(doc)
	require.ErrorIs(t, err, ErrExternalBuffer)
}

func TestCheckDocumentBadIndexComponent(t *testing.T) {
	doc := buildDoc([][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, []uint16{0, 1, 2})
	doc.Accessors[1].ComponentType = gltf.ComponentFloat

	_, err := CheckDocument(doc)
	require.ErrorContains(t, err, "unsupported index component type")
}

func TestCheckMissingFile(t *testing.T) {
	_, err := Check("testdata/no-such-file.glb")
	require.Error(t, err)
	require.ErrorContains(t, err, "open gltf")
}
