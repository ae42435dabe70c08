package source

import "testing"

func TestSpanCoverAndContains(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 6, End: 12}
	if got := a.Cover(b); got != (Span{File: 1, Start: 4, End: 12}) {
		t.Fatalf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 100}); got != a {
		t.Fatalf("cover across files must be a no-op, got %v", got)
	}
	if !a.Cover(b).Contains(b) || a.Contains(b) {
		t.Fatalf("Contains mismatch")
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"disjoint", Span{Start: 0, End: 3}, Span{Start: 3, End: 5}, false},
		{"overlap", Span{Start: 0, End: 4}, Span{Start: 3, End: 5}, true},
		{"nested", Span{Start: 0, End: 10}, Span{Start: 3, End: 5}, true},
		{"two empty", Span{Start: 3, End: 3}, Span{Start: 3, End: 3}, false},
		{"empty inside", Span{Start: 4, End: 4}, Span{Start: 3, End: 5}, true},
		{"empty at edge", Span{Start: 3, End: 3}, Span{Start: 3, End: 5}, false},
		{"other file", Span{File: 1, Start: 0, End: 4}, Span{File: 2, Start: 0, End: 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Fatalf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Fatalf("Overlaps is not symmetric")
			}
		})
	}
}

func TestSpanShiftRight(t *testing.T) {
	s := Span{File: 3, Start: 2, End: 5}.ShiftRight(10)
	if s != (Span{File: 3, Start: 12, End: 15}) || s.Len() != 3 {
		t.Fatalf("ShiftRight = %v", s)
	}
}
