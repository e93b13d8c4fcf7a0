package layout

import "testing"

func TestCalculateListHeight(t *testing.T) {
	cfg := DefaultConfig().List

	tests := []struct {
		name           string
		terminalHeight int
		want           int
	}{
		{"normal terminal", 24, 17},           // 24 - 5 - 2 = 17
		{"large terminal", 50, 43},            // 50 - 7 = 43
		{"small terminal enforces min", 8, 3}, // 8 - 7 = 1, min is 3
		{"negative clamps to min", 2, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateListHeight(tt.terminalHeight, cfg)
			if got != tt.want {
				t.Errorf("CalculateListHeight(%d) = %d, want %d",
					tt.terminalHeight, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleItems(t *testing.T) {
	cfg := DefaultConfig().List

	tests := []struct {
		listHeight int
		want       int
	}{
		{17, 5}, // 17 / 3
		{3, 1},
		{2, 1}, // at least one
		{30, 10},
	}

	for _, tt := range tests {
		if got := CalculateVisibleItems(tt.listHeight, cfg); got != tt.want {
			t.Errorf("CalculateVisibleItems(%d) = %d, want %d", tt.listHeight, got, tt.want)
		}
	}
}

func TestCalculateItemWidth(t *testing.T) {
	cfg := DefaultConfig().List

	if got := CalculateItemWidth(80, cfg); got != 74 {
		t.Errorf("CalculateItemWidth(80) = %d, want 74", got)
	}
	if got := CalculateItemWidth(12, cfg); got != 10 {
		t.Errorf("CalculateItemWidth(12) = %d, want 10 (minimum)", got)
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		selected       int
		total          int
		viewportHeight int
		want           int
	}{
		{"no scroll needed", 2, 5, 10, 0},
		{"selection near start", 1, 20, 10, 0},
		{"selection in middle", 10, 20, 10, 5}, // 10 - 10/2 = 5
		{"selection near end", 18, 20, 10, 10}, // max offset = 20-10 = 10
		{"selection at end", 19, 20, 10, 10},
		{"all items visible", 5, 8, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateViewportOffset(tt.selected, tt.total, tt.viewportHeight)
			if got != tt.want {
				t.Errorf("CalculateViewportOffset(%d, %d, %d) = %d, want %d",
					tt.selected, tt.total, tt.viewportHeight, got, tt.want)
			}
		})
	}
}
