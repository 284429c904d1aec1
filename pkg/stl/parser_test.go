package stl

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"

	"github.com/philipparndt/gowalk/pkg/geometry"
)

const asciiWall = `solid wall
  facet normal 0 0 1
    outer loop
      vertex -1 0 -2
      vertex 3 0 -2
      vertex -1 4 -2
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 3 0 -2
      vertex 3 4 -2
      vertex -1 4 -2
    endloop
  endfacet
endsolid wall
`

func TestReadASCII(t *testing.T) {
	model, err := Read(strings.NewReader(asciiWall))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if model.Name != "wall" {
		t.Errorf("Name failed: expected wall, got %q", model.Name)
	}
	if model.TriangleCount() != 2 {
		t.Fatalf("TriangleCount failed: expected 2, got %d", model.TriangleCount())
	}

	bbox := model.BoundingBox()
	if bbox.Min != geometry.NewVector3(-1, 0, -2) || bbox.Max != geometry.NewVector3(3, 4, -2) {
		t.Errorf("BoundingBox failed: got min %v max %v", bbox.Min, bbox.Max)
	}
}

func TestReadASCIIInvalidCoordinate(t *testing.T) {
	broken := strings.Replace(asciiWall, "vertex 3 4 -2", "vertex 3 four -2", 1)
	if _, err := Read(strings.NewReader(broken)); err == nil {
		t.Errorf("Read failed: expected error for invalid coordinate")
	}
}

func TestReadBinary(t *testing.T) {
	var buf bytes.Buffer
	header := make([]byte, 80)
	copy(header, "floor")
	buf.Write(header)
	_ = binary.Write(&buf, binary.LittleEndian, uint32(1))
	_ = binary.Write(&buf, binary.LittleEndian, binaryFacet{
		Normal: [3]float32{0, 1, 0},
		V1:     [3]float32{0, 0, 0},
		V2:     [3]float32{2, 0, 0},
		V3:     [3]float32{0, 0, 2},
	})

	model, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if model.Name != "floor" {
		t.Errorf("Name failed: expected floor, got %q", model.Name)
	}
	if model.TriangleCount() != 1 {
		t.Fatalf("TriangleCount failed: expected 1, got %d", model.TriangleCount())
	}
	if model.Triangles[0].V2 != geometry.NewVector3(2, 0, 0) {
		t.Errorf("Vertex failed: expected (2,0,0), got %v", model.Triangles[0].V2)
	}
}

func TestReadBinaryTruncated(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(3))

	if _, err := Read(&buf); err == nil {
		t.Errorf("Read failed: expected error for truncated facet data")
	}
}
