package profile

// XPRequiredForLevel returns the XP cost of advancing from level to level+1.
// The curve is strictly increasing, with an extra jump every 5 levels:
// 100, 150, 200, 250, 300, 450, 500, ...
func XPRequiredForLevel(level int) int {
	if level < 1 {
		return 0
	}
	return 100 + (level-1)*50 + (level-1)/5*100
}

// CumulativeXPForLevel returns the total XP needed to have reached level,
// i.e. the sum of XPRequiredForLevel over levels 1..level-1. Level 1 is 0.
func CumulativeXPForLevel(level int) int {
	total := 0
	for l := 1; l < level; l++ {
		total += XPRequiredForLevel(l)
	}
	return total
}

// LevelForTotalXP returns the level for a lifetime XP total. The threshold
// is strictly exclusive: landing exactly on a level's cumulative cost does
// not advance past it (100 total XP is still level 1 when level 1 costs 100).
// XP arrives in batches, so a single award can cross several levels; the
// level is found by iterating, never by assuming a single step.
func LevelForTotalXP(totalXP int) int {
	level := 1
	for CumulativeXPForLevel(level+1) < totalXP {
		level++
	}
	return level
}
