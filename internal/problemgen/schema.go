package problemgen

import "github.com/abhisek/mates/internal/llm"

// ExerciseSchema defines the JSON reply expected from the model.
var ExerciseSchema = &llm.Schema{
	Name:        "exercise",
	Description: "A single primary-school maths exercise in Spanish",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"type": map[string]any{
				"type":        "string",
				"description": "Exercise category echoed back",
			},
			"question": map[string]any{
				"type":        "string",
				"description": "The prompt shown to the learner",
			},
			"context": map[string]any{
				"type":        "string",
				"description": "Statement to reformulate, or the operation an invented problem must use",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A short, subtle hint",
			},
		},
		"required": []any{"question"},
	},
}
