package utils

import "testing"

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int
		limit int
		want  int
	}{
		{"empty", 0, 10, 0},
		{"exact fit", 20, 10, 2},
		{"remainder", 23, 10, 3},
		{"single short page", 3, 10, 1},
		{"limit one", 5, 1, 5},
		{"zero limit", 23, 0, 0},
		{"negative total", -1, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPages(tt.total, tt.limit)

			if got != tt.want {
				t.Fatalf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
			}
		})
	}
}

func TestParsePageParam(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 1},
		{"abc", 1},
		{"0", 1},
		{"-3", 1},
		{"1", 1},
		{"7", 7},
	}

	for _, tt := range tests {
		if got := ParsePageParam(tt.raw); got != tt.want {
			t.Errorf("ParsePageParam(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseLimitParam(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", DefaultLimit},
		{"abc", DefaultLimit},
		{"0", DefaultLimit},
		{"10", 10},
		{"250", MaxLimit},
	}

	for _, tt := range tests {
		if got := ParseLimitParam(tt.raw); got != tt.want {
			t.Errorf("ParseLimitParam(%q) = %d, want %d", tt.raw, got, tt.want)
		}
	}
}
