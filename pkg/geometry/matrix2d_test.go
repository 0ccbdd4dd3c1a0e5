package geometry

import (
	"math"
	"testing"
)

func TestIdentity2(t *testing.T) {
	id := Identity2()
	v := Vector2D{3, -7}
	if got := id.MulVec(v); !got.Eq(v) {
		t.Errorf("Identity2().MulVec(%v) = %v; want %v", v, got, v)
	}
}

func TestMat2_Transpose(t *testing.T) {
	m := Mat2{A11: 1, A12: 2, A21: 3, A22: 4}
	want := Mat2{A11: 1, A12: 3, A21: 2, A22: 4}
	if got := m.Transpose(); !got.Eq(want) {
		t.Errorf("Transpose = %v; want %v", got, want)
	}
	if got := m.Transpose().Transpose(); !got.Eq(m) {
		t.Errorf("double Transpose = %v; want %v", got, m)
	}
}

func TestMat2_MulVec(t *testing.T) {
	m := Mat2{A11: 1, A12: 2, A21: 3, A22: 4}
	v := Vector2D{5, 6}
	want := Vector2D{17, 39}
	if got := m.MulVec(v); !got.Eq(want) {
		t.Errorf("MulVec = %v; want %v", got, want)
	}
}

func TestMat2_AddSubScale(t *testing.T) {
	a := Mat2{A11: 1, A12: 2, A21: 3, A22: 4}
	b := Mat2{A11: 4, A12: 3, A21: 2, A22: 1}

	if got, want := a.Add(b), (Mat2{A11: 5, A12: 5, A21: 5, A22: 5}); !got.Eq(want) {
		t.Errorf("Add = %v; want %v", got, want)
	}
	if got := a.Add(b).Sub(b); !got.Eq(a) {
		t.Errorf("Add then Sub = %v; want %v", got, a)
	}
	if got, want := a.Scale(2), (Mat2{A11: 2, A12: 4, A21: 6, A22: 8}); !got.Eq(want) {
		t.Errorf("Scale = %v; want %v", got, want)
	}
}

func TestMat2_IsFinite(t *testing.T) {
	if !(Mat2{A11: 1}).IsFinite() {
		t.Error("finite matrix reported non-finite")
	}
	if (Mat2{A12: math.NaN()}).IsFinite() {
		t.Error("NaN matrix reported finite")
	}
	if (Mat2{A22: math.Inf(-1)}).IsFinite() {
		t.Error("Inf matrix reported finite")
	}
}
