package tuple

import (
	"testing"
)

func BenchmarkAdd(b *testing.B) {
	p := Point(1, 2, 3)
	v := Vector(4, 5, 6)

	for b.Loop() {
		_ = p.Add(v)
	}
}

func BenchmarkSub(b *testing.B) {
	p1 := Point(1, 2, 3)
	p2 := Point(4, 5, 6)

	for b.Loop() {
		_ = p1.Sub(p2)
	}
}

func BenchmarkDot(b *testing.B) {
	v1 := Vector(1, 2, 3)
	v2 := Vector(4, 5, 6)

	for b.Loop() {
		_ = v1.Dot(v2)
	}
}

func BenchmarkCross(b *testing.B) {
	v1 := Vector(1, 2, 3)
	v2 := Vector(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkNormalize(b *testing.B) {
	v := Vector(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkEquals(b *testing.B) {
	v1 := Vector(1, 2, 3)
	v2 := Vector(1+1e-6, 2, 3)

	for b.Loop() {
		_ = v1.Equals(v2)
	}
}
