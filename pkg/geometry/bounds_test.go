package geometry

import (
	"math"
	"testing"
)

func TestBoundingBoxExtend(t *testing.T) {
	bbox := NewBoundingBox()

	bbox.Extend(NewVector3(1, 2, 3))
	bbox.Extend(NewVector3(4, 5, 6))
	bbox.Extend(NewVector3(-1, 0, 2))

	expectedMin := NewVector3(-1, 0, 2)
	expectedMax := NewVector3(4, 5, 6)

	if bbox.Min != expectedMin {
		t.Errorf("Min failed: expected %v, got %v", expectedMin, bbox.Min)
	}
	if bbox.Max != expectedMax {
		t.Errorf("Max failed: expected %v, got %v", expectedMax, bbox.Max)
	}
}

func TestBoundingBoxUnion(t *testing.T) {
	a := NewBoundingBox()
	a.Extend(NewVector3(0, 0, 0))
	a.Extend(NewVector3(1, 1, 1))

	b := NewBoundingBox()
	b.Extend(NewVector3(-2, 0.5, 3))

	a.Union(b)
	a.Union(NewBoundingBox()) // empty boxes are ignored

	if a.Min != NewVector3(-2, 0, 0) || a.Max != NewVector3(1, 1, 3) {
		t.Errorf("Union failed: got min %v max %v", a.Min, a.Max)
	}
}

func TestBoundingBoxEmpty(t *testing.T) {
	bbox := NewBoundingBox()
	if !bbox.IsEmpty() {
		t.Errorf("IsEmpty failed: new box should be empty")
	}
	bbox.Extend(NewVector3(1, 1, 1))
	if bbox.IsEmpty() {
		t.Errorf("IsEmpty failed: single point box should not be empty")
	}
}

func TestBoundingBoxSizeAndCenter(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(0, 0, 0))
	bbox.Extend(NewVector3(10, 20, 30))

	if size := bbox.Size(); size != NewVector3(10, 20, 30) {
		t.Errorf("Size failed: expected %v, got %v", NewVector3(10, 20, 30), size)
	}
	if center := bbox.Center(); center != NewVector3(5, 10, 15) {
		t.Errorf("Center failed: expected %v, got %v", NewVector3(5, 10, 15), center)
	}
	if volume := bbox.Volume(); math.Abs(volume-6000) > 1e-10 {
		t.Errorf("Volume failed: expected 6000, got %v", volume)
	}
}

func TestBoundingBoxIntersectRay(t *testing.T) {
	bbox := NewBoundingBox()
	bbox.Extend(NewVector3(-1, -1, -5))
	bbox.Extend(NewVector3(1, 1, -3))

	ray := NewRay(NewVector3(0, 0, 0), NewVector3(0, 0, -1))
	if !bbox.IntersectRay(ray, 10) {
		t.Errorf("IntersectRay failed: expected hit within 10")
	}
	if bbox.IntersectRay(ray, 2) {
		t.Errorf("IntersectRay failed: box starts at distance 3, expected miss within 2")
	}
	if bbox.IntersectRay(NewRay(NewVector3(0, 0, 0), NewVector3(0, 0, 1)), 10) {
		t.Errorf("IntersectRay failed: expected miss behind origin")
	}
}
