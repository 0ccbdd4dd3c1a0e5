package geometry

import (
	"fmt"
	"math"
)

// Mat2 is a 2x2 matrix stored row-major. It is the natural size for the
// centroid Jacobians of a planar tessellation, so we keep it a small value
// type in the same spirit as Vector2D instead of reaching for a general
// linear-algebra package.
type Mat2 struct {
	A11, A12 float64
	A21, A22 float64
}

// Identity2 returns the 2x2 identity matrix.
func Identity2() Mat2 {
	return Mat2{A11: 1, A22: 1}
}

// String implements fmt.Stringer.
func (m Mat2) String() string {
	return fmt.Sprintf("[[%.4f %.4f] [%.4f %.4f]]", m.A11, m.A12, m.A21, m.A22)
}

// Add returns the element-wise sum m + other.
func (m Mat2) Add(other Mat2) Mat2 {
	return Mat2{
		A11: m.A11 + other.A11, A12: m.A12 + other.A12,
		A21: m.A21 + other.A21, A22: m.A22 + other.A22,
	}
}

// Sub returns the element-wise difference m - other.
func (m Mat2) Sub(other Mat2) Mat2 {
	return Mat2{
		A11: m.A11 - other.A11, A12: m.A12 - other.A12,
		A21: m.A21 - other.A21, A22: m.A22 - other.A22,
	}
}

// Scale multiplies every element by the scalar.
func (m Mat2) Scale(scalar float64) Mat2 {
	return Mat2{
		A11: m.A11 * scalar, A12: m.A12 * scalar,
		A21: m.A21 * scalar, A22: m.A22 * scalar,
	}
}

// Transpose returns the transposed matrix.
func (m Mat2) Transpose() Mat2 {
	return Mat2{A11: m.A11, A12: m.A21, A21: m.A12, A22: m.A22}
}

// MulVec applies the matrix to a vector: m · v.
func (m Mat2) MulVec(v Vector2D) Vector2D {
	return Vector2D{
		X: m.A11*v.X + m.A12*v.Y,
		Y: m.A21*v.X + m.A22*v.Y,
	}
}

// IsFinite reports whether all four elements are finite.
func (m Mat2) IsFinite() bool {
	for _, e := range [4]float64{m.A11, m.A12, m.A21, m.A22} {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return false
		}
	}
	return true
}

// Eq checks approximate element-wise equality using Epsilon.
func (m Mat2) Eq(other Mat2) bool {
	return math.Abs(m.A11-other.A11) <= Epsilon &&
		math.Abs(m.A12-other.A12) <= Epsilon &&
		math.Abs(m.A21-other.A21) <= Epsilon &&
		math.Abs(m.A22-other.A22) <= Epsilon
}
