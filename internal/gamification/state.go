// Package gamification tracks the learner's cosmetic progress: experience
// points, level and the run of consecutive correct answers.
package gamification

// XPPerCorrect is awarded for every correct answer.
const XPPerCorrect = 10

// XPPerLevel is the experience needed to climb one level.
const XPPerLevel = 100

// MaxNicknameRunes bounds the stored display name.
const MaxNicknameRunes = 24

// State is the persisted progress document.
type State struct {
	Nickname string `json:"nickname"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
	Streak   int    `json:"streak"`
}

// DefaultState is the progress of a new learner.
func DefaultState() State {
	return State{Level: 1}
}

// LevelFor returns the level reached with xp experience points.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

// LevelProgress returns the experience earned inside the current level and
// the amount the level spans.
func (s State) LevelProgress() (int, int) {
	return max(s.XP, 0) % XPPerLevel, XPPerLevel
}

// normalized clamps counters and recomputes the derived level.
func (s State) normalized() State {
	s.XP = max(s.XP, 0)
	s.Streak = max(s.Streak, 0)
	s.Level = LevelFor(s.XP)
	return s
}

// Outcome describes what one recorded answer changed.
type Outcome struct {
	Awarded         int  `json:"awarded"`
	LeveledUp       bool `json:"leveledUp"`
	PreviousLevel   int  `json:"previousLevel"`
	Level           int  `json:"level"`
	Streak          int  `json:"streak"`
	StreakMilestone bool `json:"streakMilestone"`
}

// StreakEvery is the spacing of streak milestones.
const StreakEvery = 5

// StreakMilestone reports whether a streak of n is a milestone worth
// celebrating.
func StreakMilestone(n int) bool {
	return n > 0 && n%StreakEvery == 0
}
