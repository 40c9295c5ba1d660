package session

import "github.com/abhisek/mates/internal/exercise"

// CategoryResult tracks answers for one category within a run.
type CategoryResult struct {
	Category  exercise.Category `json:"category"`
	Label     string            `json:"label"`
	Attempted int               `json:"attempted"`
	Correct   int               `json:"correct"`
	Accuracy  float64           `json:"accuracy"` // Correct / Attempted (computed)
}

// Record adds a new answer result to the tally.
func (cr *CategoryResult) Record(correct bool) {
	cr.Attempted++
	if correct {
		cr.Correct++
	}
	if cr.Attempted > 0 {
		cr.Accuracy = float64(cr.Correct) / float64(cr.Attempted)
	}
}
