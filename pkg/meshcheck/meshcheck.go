// Package meshcheck inspects the triangle geometry of glTF assets with the
// tuple algebra: face normals, surface area, bounds, and degenerate-face
// detection. Faces are checked for degeneracy before their normals are
// normalized, so zero-area geometry gets reported instead of turning into
// NaN downstream.
package meshcheck

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/eatspaint/raybase/pkg/tuple"
)

var (
	// ErrNoGeometry means the document contains no triangle primitives.
	ErrNoGeometry = errors.New("meshcheck: no triangle geometry")

	// ErrExternalBuffer means geometry lives in a buffer that was not
	// embedded or resolved when the document was opened.
	ErrExternalBuffer = errors.New("meshcheck: buffer data not embedded")
)

// Stats summarizes the triangle geometry of one document.
type Stats struct {
	Name       string
	Vertices   int
	Triangles  int
	Degenerate []int       // document-order indices of zero-area faces
	Min, Max   tuple.Tuple // axis-aligned bounds, as points
	Centroid   tuple.Tuple // mean vertex position, a point
	Area       float64     // summed face area; degenerate faces contribute 0
}

// Check opens a glTF/GLB file and inspects its geometry.
func Check(path string) (*Stats, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	stats, err := CheckDocument(doc)
	if err != nil {
		return nil, err
	}
	stats.Name = filepath.Base(path)
	return stats, nil
}

// CheckDocument inspects the triangle geometry of an already-loaded document.
func CheckDocument(doc *gltf.Document) (*Stats, error) {
	stats := &Stats{}
	var points []tuple.Tuple
	var faces []Triangle

	for _, m := range doc.Meshes {
		if stats.Name == "" {
			stats.Name = m.Name
		}
		for _, prim := range m.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}

			posIdx, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				continue
			}

			pts, err := readPoints(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q: read positions: %w", m.Name, err)
			}
			points = append(points, pts...)

			var indices []int
			if prim.Indices != nil {
				indices, err = readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q: read indices: %w", m.Name, err)
				}
			} else {
				// Non-indexed: vertices form sequential triangles.
				indices = make([]int, len(pts))
				for i := range indices {
					indices[i] = i
				}
			}

			for i := 0; i+2 < len(indices); i += 3 {
				faces = append(faces, Triangle{
					A: pts[indices[i]],
					B: pts[indices[i+1]],
					C: pts[indices[i+2]],
				})
			}
		}
	}

	if len(faces) == 0 {
		return nil, ErrNoGeometry
	}

	stats.Vertices = len(points)
	stats.Triangles = len(faces)

	stats.Min = points[0]
	stats.Max = points[0]
	sum := tuple.Vector(0, 0, 0)
	for _, p := range points {
		stats.Min = stats.Min.Min(p)
		stats.Max = stats.Max.Max(p)
		// Summing n points leaves W = n; the Div below restores W = 1.
		sum = sum.Add(p)
	}
	stats.Centroid = sum.Div(float64(len(points)))

	for i, f := range faces {
		if f.Degenerate() {
			stats.Degenerate = append(stats.Degenerate, i)
			continue
		}
		stats.Area += f.Area()
	}

	return stats, nil
}

// readPoints decodes a VEC3 float accessor into points.
func readPoints(doc *gltf.Document, accessorIdx int) ([]tuple.Tuple, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}

	data, start, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	stride := doc.BufferViews[*accessor.BufferView].ByteStride
	if stride == 0 {
		stride = 12 // 3 floats, tightly packed
	}

	pts := make([]tuple.Tuple, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		pts[i] = tuple.Point(
			readFloat32(data[offset:]),
			readFloat32(data[offset+4:]),
			readFloat32(data[offset+8:]),
		)
	}
	return pts, nil
}

// readIndices decodes a SCALAR index accessor of any legal component width.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor, got %v", accessor.Type)
	}

	data, start, err := accessorBytes(doc, accessor)
	if err != nil {
		return nil, err
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}

	stride := doc.BufferViews[*accessor.BufferView].ByteStride
	if stride == 0 {
		stride = size
	}

	indices := make([]int, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		switch size {
		case 1:
			indices[i] = int(data[offset])
		case 2:
			indices[i] = int(uint16(data[offset]) | uint16(data[offset+1])<<8)
		case 4:
			indices[i] = int(uint32(data[offset]) |
				uint32(data[offset+1])<<8 |
				uint32(data[offset+2])<<16 |
				uint32(data[offset+3])<<24)
		}
	}
	return indices, nil
}

// accessorBytes resolves an accessor to its backing buffer bytes and the
// byte offset where the accessor's data begins.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}

	view := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[view.Buffer]

	if len(buffer.Data) == 0 {
		if buffer.URI != "" {
			return nil, 0, fmt.Errorf("buffer %d (%s): %w", view.Buffer, buffer.URI, ErrExternalBuffer)
		}
		return nil, 0, fmt.Errorf("buffer %d has no data", view.Buffer)
	}

	return buffer.Data, view.ByteOffset + accessor.ByteOffset, nil
}

// readFloat32 reads a little-endian float32 and widens it.
func readFloat32(b []byte) float64 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return float64(math.Float32frombits(bits))
}
