package perm

import (
	"slices"
	"testing"
)

func TestFactorial(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-1, 1},
		{0, 1},
		{1, 1},
		{4, 24},
		{6, 720},
		{12, 479001600},
	}
	for _, tt := range tests {
		if got := Factorial(tt.n); got != tt.want {
			t.Errorf("Factorial(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestGenerate_CountAndUniqueness(t *testing.T) {
	for n := 0; n <= 5; n++ {
		perms := Generate(n, 0)

		want := Factorial(n)
		if len(perms) != want {
			t.Errorf("Generate(%d, 0) returned %d permutations, want %d", n, len(perms), want)
		}

		seen := make(map[string]bool, len(perms))
		for _, p := range perms {
			if len(p) != n {
				t.Fatalf("Generate(%d, 0) yielded permutation of length %d", n, len(p))
			}
			key := ""
			for _, v := range p {
				key += string(rune('a' + v))
			}
			if seen[key] {
				t.Fatalf("Generate(%d, 0) yielded duplicate permutation %v", n, p)
			}
			seen[key] = true
		}
	}
}

func TestGenerate_Limit(t *testing.T) {
	perms := Generate(5, 10)
	if len(perms) != 10 {
		t.Errorf("Generate(5, 10) returned %d permutations, want 10", len(perms))
	}
}

func TestGenerate_IndependentSlices(t *testing.T) {
	perms := Generate(3, 0)
	perms[0][0] = 99
	for _, p := range perms[1:] {
		if p[0] == 99 {
			t.Fatal("permutations share backing storage")
		}
	}
}

func TestApply(t *testing.T) {
	items := []string{"a", "b", "c"}
	got := Apply(items, []int{2, 0, 1})
	want := []string{"c", "a", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("Apply() = %v, want %v", got, want)
	}
	if !slices.Equal(items, []string{"a", "b", "c"}) {
		t.Errorf("Apply() mutated input: %v", items)
	}
}

func TestApply_LengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Apply with mismatched lengths did not panic")
		}
	}()
	Apply([]int{1, 2}, []int{0})
}
