package game

import "time"

// Settings tunes the difficulty curve.
type Settings struct {
	StartingInterval time.Duration
	SpeedIncrement   time.Duration
	MinInterval      time.Duration
	LinesPerLevel    int
}

func DefaultSettings() Settings {
	return Settings{
		StartingInterval: 800 * time.Millisecond,
		SpeedIncrement:   50 * time.Millisecond,
		MinInterval:      100 * time.Millisecond,
		LinesPerLevel:    10,
	}
}

// FallInterval is the tick period at the given level, never below MinInterval.
func (s Settings) FallInterval(level int) time.Duration {
	d := s.StartingInterval - time.Duration(level-1)*s.SpeedIncrement
	if d < s.MinInterval {
		return s.MinInterval
	}
	return d
}

// LevelForLines derives the level from the total lines cleared.
func (s Settings) LevelForLines(lines int) int {
	return lines/s.LinesPerLevel + 1
}

var baseScores = [...]int{0, 100, 300, 500, 800}

// ScoreForLines is the award for clearing n rows at once at level.
func ScoreForLines(n, level int) int {
	if n <= 0 || n >= len(baseScores) {
		return 0
	}
	return baseScores[n] * level
}

const hardDropPointsPerRow = 2
