// Package review implements the forgetting-curve scheduler: every studied
// content item gets a review state whose next-due date stretches or shrinks
// with the learner's accuracy on it.
package review

import (
	"time"
)

// Item types, tagging which kind of content a review item points at.
// Content itself is opaque to the engine; only the identifier matters.
const (
	TypeQuiz   = "quiz"
	TypeTerm   = "term"
	TypeAIInfo = "ai_info"
)

// Intervals is the review gap table in days, indexed by difficulty-1.
// Higher difficulty means better retention and a longer gap.
var Intervals = []int{1, 3, 7, 14, 30, 90}

// Difficulty bounds. 3 is the neutral starting rating.
const (
	MinDifficulty     = 1
	MaxDifficulty     = 5
	NeutralDifficulty = 3
)

// Item is the review state for one piece of studied content. Items are
// never hard-deleted, only deactivated.
type Item struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ContentID    string    `json:"contentId"`
	Difficulty   int       `json:"difficulty"`
	CorrectCount int       `json:"correctCount"`
	TotalCount   int       `json:"totalCount"`
	LastReviewed time.Time `json:"lastReviewed"`
	NextReview   time.Time `json:"nextReview"`
	IsActive     bool      `json:"isActive"`
}

// IsDue reports whether the item is at or past its review date.
func (it *Item) IsDue(now time.Time) bool {
	return it.IsActive && !now.Before(it.NextReview)
}

// OverdueDays returns how many days past due the item is, 0 if not yet due.
func (it *Item) OverdueDays(now time.Time) float64 {
	if now.Before(it.NextReview) {
		return 0
	}
	return now.Sub(it.NextReview).Hours() / 24.0
}

// Accuracy is the lifetime correct ratio, 0 before any outcome is recorded.
func (it *Item) Accuracy() float64 {
	if it.TotalCount == 0 {
		return 0
	}
	return float64(it.CorrectCount) / float64(it.TotalCount)
}

// IntervalDays returns the review gap for a difficulty rating, clamping
// out-of-range ratings to the table bounds.
func IntervalDays(difficulty int) int {
	idx := difficulty - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Intervals) {
		idx = len(Intervals) - 1
	}
	return Intervals[idx]
}

// NextDifficulty adapts the rating to the observed accuracy: promote at
// 90%+, hold at 70%+, demote below that, clamped to [1, 5].
func NextDifficulty(current int, accuracy float64) int {
	switch {
	case accuracy >= 0.9:
		if current < MaxDifficulty {
			return current + 1
		}
		return MaxDifficulty
	case accuracy >= 0.7:
		return current
	default:
		if current > MinDifficulty {
			return current - 1
		}
		return MinDifficulty
	}
}
