package profile

import "testing"

func TestXPRequiredForLevel_Curve(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 150},
		{3, 200},
		{4, 250},
		{5, 300},
		{6, 450}, // extra jump every 5 levels
		{7, 500},
		{10, 650},
		{11, 800},
	}
	for _, tt := range tests {
		if got := XPRequiredForLevel(tt.level); got != tt.want {
			t.Errorf("XPRequiredForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestXPRequiredForLevel_StrictlyIncreasing(t *testing.T) {
	prev := 0
	for level := 1; level <= 100; level++ {
		cost := XPRequiredForLevel(level)
		if cost <= prev {
			t.Fatalf("curve not strictly increasing at level %d: %d <= %d", level, cost, prev)
		}
		prev = cost
	}
}

func TestCumulativeXPForLevel(t *testing.T) {
	if got := CumulativeXPForLevel(1); got != 0 {
		t.Errorf("CumulativeXPForLevel(1) = %d, want 0", got)
	}
	if got := CumulativeXPForLevel(2); got != 100 {
		t.Errorf("CumulativeXPForLevel(2) = %d, want 100", got)
	}
	if got := CumulativeXPForLevel(4); got != 450 {
		t.Errorf("CumulativeXPForLevel(4) = %d, want 450", got)
	}
}

func TestLevelForTotalXP_Boundary(t *testing.T) {
	tests := []struct {
		totalXP int
		want    int
	}{
		{0, 1},
		{99, 1},
		{100, 1}, // exactly on the threshold stays at level 1
		{101, 2},
		{249, 2},
		{250, 2},
		{251, 3},
		{500, 4}, // 100+150+200 = 450 exceeded, next threshold is 700
	}
	for _, tt := range tests {
		if got := LevelForTotalXP(tt.totalXP); got != tt.want {
			t.Errorf("LevelForTotalXP(%d) = %d, want %d", tt.totalXP, got, tt.want)
		}
	}
}

func TestLevelForTotalXP_Monotonic(t *testing.T) {
	prev := 1
	for xp := 0; xp <= 5000; xp++ {
		level := LevelForTotalXP(xp)
		if level < prev {
			t.Fatalf("level decreased at totalXP %d: %d < %d", xp, level, prev)
		}
		if level > prev+1 {
			t.Fatalf("level jumped by more than 1 at totalXP %d: %d -> %d", xp, prev, level)
		}
		prev = level
	}
}
