package problemgen

import "github.com/abhisek/mates/internal/catalog"

// PromptInput holds the variety data drawn for one generation request.
type PromptInput struct {
	// Theme is the mandatory topic for story-based categories.
	Theme string

	// CreateTarget is the operation or result an invented problem must use.
	CreateTarget string

	// Strategy is the mental arithmetic strategy to practise.
	Strategy catalog.Strategy

	// Seed is an entropy number (0-999) added to the prompt so identical
	// prompts still produce different exercises.
	Seed int

	// AvoidNumbers lists numbers the model over-uses.
	AvoidNumbers []int

	// PriorQuestions holds recently asked question texts, oldest first.
	PriorQuestions []string
}

// exerciseOutput is the raw model reply before validation.
type exerciseOutput struct {
	Type     string `json:"type"`
	Question string `json:"question"`
	Context  string `json:"context"`
	Hint     string `json:"hint"`
}
