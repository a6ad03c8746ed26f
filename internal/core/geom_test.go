package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 5, 4)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 12, 11, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 15, 14, false},
		{"outside left", 9, 11, false},
		{"outside bottom", 12, 14, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectTranslate(t *testing.T) {
	r := NewRect(1, 2, 3, 4).Translate(10, -2)
	if r != NewRect(11, 0, 3, 4) {
		t.Errorf("Translate() = %+v", r)
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 || Min(10, 5) != 5 {
		t.Error("Min should return the smaller value")
	}
	if Max(5, 10) != 10 || Max(10, 5) != 10 {
		t.Error("Max should return the larger value")
	}
}

func TestClampFloat(t *testing.T) {
	tests := []struct {
		val, want float64
	}{
		{-0.5, 0},
		{0.25, 0.25},
		{1.5, 1},
	}
	for _, tt := range tests {
		if got := ClampFloat(tt.val, 0, 1); got != tt.want {
			t.Errorf("ClampFloat(%v, 0, 1) = %v, want %v", tt.val, got, tt.want)
		}
	}
}
