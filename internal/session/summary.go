package session

import "time"

// Summary describes the current run.
type Summary struct {
	Duration   time.Duration    `json:"duration"`
	Attempted  int              `json:"attempted"`
	Correct    int              `json:"correct"`
	Accuracy   float64          `json:"accuracy"`
	Categories []CategoryResult `json:"categories"`
}

// Summary returns the per-category tally of this run, in the order the
// categories were first answered.
func (s *Service) Summary() *Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := &Summary{Duration: s.now().Sub(s.started)}
	for _, c := range s.order {
		cr := *s.tally[c]
		sum.Categories = append(sum.Categories, cr)
		sum.Attempted += cr.Attempted
		sum.Correct += cr.Correct
	}
	if sum.Attempted > 0 {
		sum.Accuracy = float64(sum.Correct) / float64(sum.Attempted)
	}
	return sum
}
