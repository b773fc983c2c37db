package trajcore

import (
	"math"
	"testing"
)

func TestV3Cross(t *testing.T) {
	i := V3{1, 0, 0}
	j := V3{0, 1, 0}
	k := V3{0, 0, 1}
	if got := i.Cross(j); got != k {
		t.Fatalf("i x j = %v, want %v", got, k)
	}
	if got := j.Cross(k); got != i {
		t.Fatalf("j x k = %v, want %v", got, i)
	}
}

func TestV3NormPermutationInvariant(t *testing.T) {
	a := V3{5, 6, 7}
	b := V3{7, 6, 5}
	c := V3{6, 7, 5}
	want := math.Sqrt(110)
	if a.Norm() != want || a.Norm() != b.Norm() || a.Norm() != c.Norm() {
		t.Fatal("norm of [5,6,7] and its permutations should be equal")
	}
}

func TestV3UnitOfZero(t *testing.T) {
	z := V3{}
	if z.Unit() != z {
		t.Fatal("unit of the zero vector should be the zero vector")
	}
}

func TestSign(t *testing.T) {
	if Sign(10) != 1 {
		t.Fatal("sign of 10 != 1")
	}
	if Sign(-10) != -1 {
		t.Fatal("sign of -10 != -1")
	}
	if Sign(0) != 1 {
		t.Fatal("sign of 0 != 1, treated as positive by convention")
	}
}

func TestV3FusedMultiplyAdd(t *testing.T) {
	v := V3{1, 2, 3}
	a := V3{10, 10, 10}
	got := v.FusedMultiplyAdd(a, 0.5)
	want := V3{6, 7, 8}
	if got != want {
		t.Fatalf("FusedMultiplyAdd = %v, want %v", got, want)
	}
}
