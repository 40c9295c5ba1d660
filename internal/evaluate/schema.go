package evaluate

import "github.com/abhisek/mates/internal/llm"

// EvaluationSchema defines the JSON the model returns when judging an answer.
var EvaluationSchema = &llm.Schema{
	Name:        "evaluation",
	Description: "Verdict and pedagogical feedback for a learner's answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{
				"type":        "boolean",
				"description": "Whether the answer is correct (or, for invented problems, mathematically sound)",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Kind explanation for the learner, in Spanish",
			},
			"correction": map[string]any{
				"type":        "string",
				"description": "The ideal solution, when it applies",
			},
		},
		"required": []any{"isCorrect", "feedback"},
	},
}
