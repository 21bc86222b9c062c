package booking

import "testing"

func TestBadge(t *testing.T) {
	tests := []struct {
		count int
		want  string
	}{
		{-5, ""},
		{0, ""},
		{1, "1"},
		{7, "7"},
		{99, "99"},
		{100, "99+"},
		{4096, "99+"},
	}
	for _, tt := range tests {
		if got := Badge(tt.count); got != tt.want {
			t.Errorf("Badge(%d) = %q, want %q", tt.count, got, tt.want)
		}
	}
}
